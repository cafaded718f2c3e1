package timezone_test

import (
	"resort/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday(t *testing.T) {
	today := timezone.Today()
	now := timezone.Now()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour()+today.Minute()+today.Second()+today.Nanosecond())
	assert.Equal(t, now.Format(time.DateOnly), today.Format(time.DateOnly))
}

func TestParse(t *testing.T) {
	checkIn, err := timezone.Parse(time.DateOnly, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, timezone.GetLocation(), checkIn.Location())
	assert.Equal(t, "2024-01-01 00:00", checkIn.Format("2006-01-02 15:04"))

	_, err = timezone.Parse(time.DateOnly, "01/01/2024")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	checkout := time.Date(2024, 1, 3, 4, 30, 0, 0, time.UTC)

	assert.Equal(t, checkout.In(timezone.GetLocation()).Format(time.DateTime), timezone.Format(checkout, time.DateTime))
	assert.True(t, timezone.ToAppTime(checkout).Equal(checkout))
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(checkout).Location())
}
