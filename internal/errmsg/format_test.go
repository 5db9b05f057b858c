//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/llehouerou/audiobook/internal/media"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileOpen,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "media load operation",
			op:       OpMediaLoad,
			err:      errors.New("corrupt stream"),
			expected: "Failed to load media: corrupt stream",
		},
		{
			name:     "preferences operation",
			op:       OpPreferencesLoad,
			err:      errors.New("database is locked"),
			expected: "Failed to load preferences: database is locked",
		},
		{
			name:     "wrapped resolver error is reduced to its cause",
			op:       OpFileOpen,
			err:      fmt.Errorf("open media: %w", fmt.Errorf("/tmp/x.txt: %w", media.ErrUnsupported)),
			expected: "Failed to open file: unsupported audio format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpFileOpen,
			context:  "book.m4b",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpFileOpen,
			context:  "book.m4b",
			err:      fmt.Errorf("open media: %w", media.ErrNotFound),
			expected: "Failed to open file 'book.m4b': file not found",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpFileOpen,
			context:  "",
			err:      media.ErrPermission,
			expected: "Failed to open file: permission denied",
		},
		{
			name:     "load with path context",
			op:       OpMediaLoad,
			context:  "/books/hobbit.m4b",
			err:      errors.New("decode aac: invalid header"),
			expected: "Failed to load media '/books/hobbit.m4b': decode aac: invalid header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpFileOpen, OpMediaLoad,
		OpPlaybackStart, OpPlaybackSeek,
		OpPreferencesLoad, OpRecentLoad,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
