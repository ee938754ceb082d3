package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUsage, "test message: %s", "value")

	if err.Code != ErrCodeUsage {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUsage)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_USAGE: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRetrieval, cause, "failed to fetch")

	if err.Code != ErrCodeRetrieval {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRetrieval)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUsage, "test"),
			code:     ErrCodeUsage,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUsage, "test"),
			code:     ErrCodeRetrieval,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeRetrieval,
			expected: false,
		},
		{
			name:     "wrapped in fmt.Errorf",
			err:      fmt.Errorf("outer: %w", New(ErrCodeDecompress, "bad gzip")),
			code:     ErrCodeDecompress,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeStorage, "disk full")); got != ErrCodeStorage {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeStorage)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeRetrieval, "unable to download index")
	if got := UserMessage(err); got != "unable to download index" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"retrieval", New(ErrCodeRetrieval, "download failed"), ExitRetrieval},
		{"storage", New(ErrCodeStorage, "temp file"), ExitRetrieval},
		{"decompress", New(ErrCodeDecompress, "bad gzip"), ExitDecompress},
		{"usage", New(ErrCodeUsage, "bad args"), ExitUsage},
		{"internal", New(ErrCodeInternal, "bug"), ExitInternal},
		{"plain error", errors.New("plain"), ExitInternal},
		{"wrapped retrieval", fmt.Errorf("run: %w", New(ErrCodeRetrieval, "down")), ExitRetrieval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
