package releasefeed

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reNumericPart       = regexp.MustCompile(`^\d+$`)
	reLexicographicPart = regexp.MustCompile(`^\d+[A-Za-z]*$`)
)

// CompareOptions changes how CompareVersions reads version parts.
// The zero value is what the version check endpoint uses.
type CompareOptions struct {
	// Lexicographical accepts parts such as "2b" and compares parts as plain strings
	Lexicographical bool
	// ZeroExtend pads the shorter version with "0" parts, so "1.2" equals "1.2.0"
	ZeroExtend bool
}

// CompareVersions compares two dot separated versions.
// It returns -1 when v1 is older than v2, 1 when it is newer and 0 when both are equal.
// If any part of either version is malformed, the versions cannot be ordered
// and ErrIncomparableVersion is returned.
//
// Without ZeroExtend a version that is a prefix of the other one is the older one:
// "1.2" is older than "1.2.0".
func CompareVersions(v1, v2 string, opts CompareOptions) (int, error) {
	v1parts := strings.Split(v1, ".")
	v2parts := strings.Split(v2, ".")

	valid := reNumericPart
	if opts.Lexicographical {
		valid = reLexicographicPart
	}
	for _, parts := range [][]string{v1parts, v2parts} {
		for _, part := range parts {
			if !valid.MatchString(part) {
				return 0, fmt.Errorf("%w: %q vs %q", ErrIncomparableVersion, v1, v2)
			}
		}
	}

	if opts.ZeroExtend {
		for len(v1parts) < len(v2parts) {
			v1parts = append(v1parts, "0")
		}
		for len(v2parts) < len(v1parts) {
			v2parts = append(v2parts, "0")
		}
	}

	compare := compareNumeric
	if opts.Lexicographical {
		compare = strings.Compare
	}

	for i := range v1parts {
		if len(v2parts) == i {
			return 1, nil
		}
		switch c := compare(v1parts[i], v2parts[i]); {
		case c > 0:
			return 1, nil
		case c < 0:
			return -1, nil
		}
	}

	if len(v1parts) != len(v2parts) {
		return -1, nil
	}
	return 0, nil
}

// compareNumeric orders two strings of digits by their numeric value.
// Any number of digits is accepted, leading zeros are ignored.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
