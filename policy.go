package bgmask

import (
	"fmt"
	"strings"
)

// Policy selects the background predicate used when building a mask.
type Policy int

const (
	// PolicyLight treats near-white and light gray pixels as background.
	PolicyLight Policy = iota + 1
	// PolicyDark treats pixels with no bright channel as background.
	PolicyDark
)

const (
	// Light policy: every channel above these is background.
	nearWhiteThreshold = 240
	lightGrayThreshold = 220

	// Dark policy: a pixel with any channel above brightThreshold is kept,
	// a pixel with all channels below veryDarkThreshold is dropped.
	brightThreshold   = 120
	veryDarkThreshold = 80
)

// ParsePolicy maps "light" or "dark" (case-insensitive) to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return PolicyLight, nil
	case "dark":
		return PolicyDark, nil
	}
	return 0, fmt.Errorf("unknown policy %q (want light or dark)", s)
}

func (p Policy) String() string {
	switch p {
	case PolicyLight:
		return "light"
	case PolicyDark:
		return "dark"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Valid reports whether p is one of the defined policies.
func (p Policy) Valid() bool {
	return p == PolicyLight || p == PolicyDark
}

// Description is the human readable filtering strategy, or "" when the
// policy has nothing to add beyond its name.
func (p Policy) Description() string {
	if p == PolicyDark {
		return "Removed background using brightness + saturation filtering"
	}
	return ""
}

// IsBackground reports whether a pixel with the given color channels should
// become transparent. Undefined policies never match.
func (p Policy) IsBackground(r, g, b uint8) bool {
	switch p {
	case PolicyLight:
		nearWhite := r > nearWhiteThreshold && g > nearWhiteThreshold && b > nearWhiteThreshold
		lightGray := r > lightGrayThreshold && g > lightGrayThreshold && b > lightGrayThreshold
		return nearWhite || lightGray
	case PolicyDark:
		bright := r > brightThreshold || g > brightThreshold || b > brightThreshold
		veryDark := r < veryDarkThreshold && g < veryDarkThreshold && b < veryDarkThreshold
		return !bright || veryDark
	}
	return false
}
