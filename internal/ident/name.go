package ident

import (
	"fmt"
	"strings"
)

// Name is an IP name ("PkgPart" in the spec's vocabulary): first
// character alphabetic, body drawn from [A-Za-z0-9_-]. Two names are
// Equivalent when, after lower-casing and mapping '-' to '_', they are
// equal — so "my-ip" and "my_ip" and "MY-IP" name the same IP.
type Name struct {
	raw string
}

// NewName validates and wraps an IP name spelling.
func NewName(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("ident: IP name must not be empty")
	}
	if !isAlpha(rune(raw[0])) {
		return Name{}, fmt.Errorf("ident: IP name %q must start with a letter", raw)
	}
	for _, c := range raw {
		if !isNameBodyChar(c) {
			return Name{}, fmt.Errorf("ident: IP name %q contains invalid character %q", raw, c)
		}
	}
	return Name{raw: raw}, nil
}

func isNameBodyChar(c rune) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || c == '-'
}

// String returns the name's original spelling.
func (n Name) String() string {
	return n.raw
}

// fold normalizes a name for equivalence comparison: lower-case, '-'
// mapped to '_'.
func (n Name) fold() string {
	lower := strings.ToLower(n.raw)
	return strings.ReplaceAll(lower, "-", "_")
}

// Equivalent reports whether n and other name the same IP, ignoring
// case and the '-'/'_' distinction. Reflexive, symmetric, and
// transitive since it reduces to string equality on a canonical form.
func (n Name) Equivalent(other Name) bool {
	return n.fold() == other.fold()
}

// Qualified is a parsed "vendor.library.name" triple. All three parts
// are required and non-empty for a name to count as fully qualified.
type Qualified struct {
	Vendor  Name
	Library Name
	Part    Name
}

// ParseQualified splits raw on '.' into at most three parts and
// validates each as a Name. Fewer than three non-empty parts is an
// error: a Qualified name is only meaningful fully qualified.
func ParseQualified(raw string) (Qualified, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Qualified{}, fmt.Errorf("ident: qualified name %q must have exactly three dot-separated parts", raw)
	}
	vendor, err := NewName(parts[0])
	if err != nil {
		return Qualified{}, fmt.Errorf("ident: qualified name %q: vendor: %w", raw, err)
	}
	library, err := NewName(parts[1])
	if err != nil {
		return Qualified{}, fmt.Errorf("ident: qualified name %q: library: %w", raw, err)
	}
	part, err := NewName(parts[2])
	if err != nil {
		return Qualified{}, fmt.Errorf("ident: qualified name %q: name: %w", raw, err)
	}
	return Qualified{Vendor: vendor, Library: library, Part: part}, nil
}

// String renders the qualified triple back as "vendor.library.name".
func (q Qualified) String() string {
	return q.Vendor.String() + "." + q.Library.String() + "." + q.Part.String()
}
