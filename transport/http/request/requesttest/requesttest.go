// Package requesttest builds request bodies for handler tests.
package requesttest

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"testing"
)

type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        string
}

// Multipart encodes files as a multipart form and returns the body with its Content-Type.
func Multipart(t testing.TB, files ...File) (string, string) {
	t.Helper()

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part %s: %v", file.Field, err)
		}

		if _, err = part.Write([]byte(file.Data)); err != nil {
			t.Fatalf("write part %s: %v", file.Field, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	return body.String(), writer.FormDataContentType()
}
