package formatting_test

import (
	"testing"

	"github.com/JaimeStill/refinery/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "512", want: 512},
		{in: "1KB", want: 1000},
		{in: "1KiB", want: 1024},
		{in: "1 mb", want: 1000 * 1000},
		{in: " 1MiB ", want: 1024 * 1024},
		{in: "", wantErr: true},
		{in: "ten MB", wantErr: true},
		{in: "5XB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1000 * 1000, "1.0 MB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d): got %q, want %q", tt.n, got, tt.want)
		}
	}
}
