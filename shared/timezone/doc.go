// Package timezone keeps every wall-clock decision in the resort's own zone.
// Night counts, "is this stay active today" checks, checkout dates and the
// timestamps shown to front desk staff all go through it, so a server running
// in UTC still closes the day at local midnight.
//
// The zone comes from APP_TIMEZONE and must be an IANA name such as
// "Asia/Makassar". An empty or unknown value falls back to UTC with a log line.
//
//	today := timezone.Today()                          // calendar date, as DATE columns scan
//	stamp := timezone.Format(row.CreatedAt, "2006-01-02 15:04:05")
//	checkIn, err := timezone.Parse("2006-01-02", req.CheckIn)
package timezone
