// Package base64 reads image data URIs, the form guest photos and ID card
// scans take when a client sends them inline: data:image/png;base64,<payload>.
package base64

import (
	stdbase64 "encoding/base64"
	"strings"
)

const (
	scheme = "data:"
	marker = ";base64,"
)

// ContentType returns the media type of a data URI without its parameters,
// or an empty string when value is not a base64 data URI.
func ContentType(value string) string {
	mediaType, _, ok := split(value)
	if !ok {
		return ""
	}

	mediaType, _, _ = strings.Cut(mediaType, ";")

	return mediaType
}

// DecodedSize is the number of bytes the payload decodes to. It is 0 when
// value is not a base64 data URI.
func DecodedSize(value string) int {
	_, payload, ok := split(value)
	if !ok {
		return 0
	}

	return stdbase64.RawStdEncoding.DecodedLen(len(strings.TrimRight(payload, "=")))
}

func split(value string) (mediaType, payload string, ok bool) {
	rest, found := strings.CutPrefix(value, scheme)
	if !found {
		return "", "", false
	}

	mediaType, payload, found = strings.Cut(rest, marker)
	if !found || mediaType == "" {
		return "", "", false
	}

	return mediaType, payload, true
}
