package base64_test

import (
	"resort/shared/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "guest photo", input: "data:image/jpeg;base64,/9j/4AAQSkZJRg==", want: "image/jpeg"},
		{name: "id card scan", input: "data:image/png;base64,iVBORw0KGgo=", want: "image/png"},
		{name: "webp package image", input: "data:image/webp;base64,UklGRg==", want: "image/webp"},
		{name: "parameters are dropped", input: "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=", want: "image/svg+xml"},
		{name: "raw base64", input: "iVBORw0KGgo="},
		{name: "plain url", input: "https://cdn.resort.test/rooms/101.jpg"},
		{name: "data uri without base64", input: "data:image/png,iVBORw0KGgo="},
		{name: "missing media type", input: "data:;base64,iVBORw0KGgo="},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base64.ContentType(tt.input))
		})
	}
}

func TestDecodedSize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "one pad", input: "data:image/png;base64,iVBORw0KGgo=", want: 8},
		{name: "no padding", input: "data:image/jpeg;base64," + strings.Repeat("A", 200), want: 150},
		{name: "two pads", input: "data:image/webp;base64,UklGRg==", want: 4},
		{name: "empty payload", input: "data:image/png;base64,", want: 0},
		{name: "not a data uri", input: strings.Repeat("A", 200), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base64.DecodedSize(tt.input))
		})
	}
}
