package ident

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a major.minor.patch triple of 16-bit unsigned integers,
// ordered lexicographically on the triple.
type Version struct {
	Major, Minor, Patch uint16
}

// ParseVersion parses "major.minor.patch", rejecting missing
// components, extra components, and non-digit characters.
func ParseVersion(raw string) (Version, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("ident: version %q must have exactly three dot-separated components", raw)
	}
	major, err := parseComponent(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("ident: version %q: major: %w", raw, err)
	}
	minor, err := parseComponent(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("ident: version %q: minor: %w", raw, err)
	}
	patch, err := parseComponent(parts[2])
	if err != nil {
		return Version{}, fmt.Errorf("ident: version %q: patch: %w", raw, err)
	}
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

func parseComponent(s string) (uint16, error) {
	if s == "" {
		return 0, fmt.Errorf("empty component")
	}
	for _, c := range s {
		if !isDigit(c) {
			return 0, fmt.Errorf("non-digit character %q", c)
		}
	}
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("out of range: %w", err)
	}
	return uint16(v), nil
}

// String formats the version as "major.minor.patch"; ParseVersion is
// its inverse.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other, comparing major, then minor, then patch.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpUint16(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpUint16(v.Minor, other.Minor)
	}
	return cmpUint16(v.Patch, other.Patch)
}

func cmpUint16(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}
