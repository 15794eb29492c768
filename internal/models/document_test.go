package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPreview(t *testing.T) {
	tests := []struct {
		name string
		full string
		want string
	}{
		{
			name: "short text passes through",
			full: "hello world",
			want: "hello world",
		},
		{
			name: "empty text passes through",
			full: "",
			want: "",
		},
		{
			name: "exactly at the limit passes through",
			full: strings.Repeat("a", PreviewLimit),
			want: strings.Repeat("a", PreviewLimit),
		},
		{
			name: "one over the limit is truncated",
			full: strings.Repeat("a", PreviewLimit+1),
			want: strings.Repeat("a", PreviewLimit) + TruncationMarker,
		},
		{
			name: "long text keeps the first 500 characters",
			full: strings.Repeat("x", 2000),
			want: strings.Repeat("x", PreviewLimit) + TruncationMarker,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPreview(tt.full))
		})
	}
}

func TestBuildPreviewMultibyte(t *testing.T) {
	// Truncation counts characters, not bytes.
	full := strings.Repeat("é", PreviewLimit+10)
	got := BuildPreview(full)
	assert.Equal(t, strings.Repeat("é", PreviewLimit)+TruncationMarker, got)
}

func TestBuildPreviewIdempotent(t *testing.T) {
	full := strings.Repeat("b", 1234)
	once := BuildPreview(full)
	twice := BuildPreview(once)
	assert.Equal(t, once, twice)
}

func TestExtractionResultDisplay(t *testing.T) {
	ok := ExtractionResult{PageNumber: 1, Text: "Q1: Satisfaction [Selected: 4]"}
	assert.Equal(t, "Q1: Satisfaction [Selected: 4]", ok.Display())

	failed := ExtractionResult{PageNumber: 2, Err: errors.New("deadline exceeded")}
	assert.Equal(t, "Error processing image: deadline exceeded", failed.Display())
}
