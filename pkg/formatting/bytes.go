// Package formatting parses and renders human-readable byte sizes for configuration.
package formatting

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ParseBytes parses a size such as "1MB", "512KiB", or "2048" into a byte count.
// SI units (KB, MB) are base-1000 and IEC units (KiB, MiB) base-1024; a bare
// number is bytes. Unit matching is case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("byte size out of range: %q", s)
	}
	return int64(n), nil
}

// FormatBytes renders n using SI units, e.g. 1000000 as "1.0 MB".
// Negative values render as "0 B".
func FormatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
