package config

import (
	"fmt"
	"strconv"
	"strings"
)

// parseColor accepts a "#rrggbb" hex string, a "0x..." hex literal or a
// plain decimal string. The config surface always carries colors as
// strings and accepts any of these encodings within them, since a bare
// TOML integer is ambiguous between a color and a count.
func parseColor(s string, deflt uint32) (uint32, error) {
	if s == "" {
		return deflt, nil
	}
	switch {
	case strings.HasPrefix(s, "#"):
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return uint32(v), nil
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		return uint32(v), nil
	default:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: not hex or decimal", s)
		}
		return uint32(v), nil
	}
}
