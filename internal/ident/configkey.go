// Package ident implements the CORE's domain primitives: tool
// configuration keys, IP names, semantic versions, and the HDL source
// identifier used to key primary units. These are distinct types even
// though several are "just strings" at the wire level, because each
// has its own equality, ordering, and validation rules.
package ident

import (
	"fmt"
	"strings"
)

// ConfigKey is a dotted tool-configuration key: "cache.dir",
// "log.level". Equality and hashing are case-insensitive.
type ConfigKey struct {
	raw string
}

// NewConfigKey validates and wraps a config key spelling.
func NewConfigKey(raw string) (ConfigKey, error) {
	if raw == "" {
		return ConfigKey{}, fmt.Errorf("ident: config key must not be empty")
	}
	first := rune(raw[0])
	if !isAlpha(first) {
		return ConfigKey{}, fmt.Errorf("ident: config key %q must start with a letter", raw)
	}
	if strings.HasSuffix(raw, ".") {
		return ConfigKey{}, fmt.Errorf("ident: config key %q must not end in '.'", raw)
	}
	if strings.Contains(raw, "..") {
		return ConfigKey{}, fmt.Errorf("ident: config key %q must not contain '..'", raw)
	}
	for _, c := range raw {
		if !isConfigKeyBodyChar(c) {
			return ConfigKey{}, fmt.Errorf("ident: config key %q contains invalid character %q", raw, c)
		}
	}
	return ConfigKey{raw: raw}, nil
}

func isConfigKeyBodyChar(c rune) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || c == '-' || c == '.'
}

func isAlpha(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// String returns the key's original spelling.
func (k ConfigKey) String() string {
	return k.raw
}

// Equal compares two config keys case-insensitively.
func (k ConfigKey) Equal(other ConfigKey) bool {
	return strings.EqualFold(k.raw, other.raw)
}

// NormalizedKey returns the lower-cased form, suitable as a map key
// for case-insensitive lookup.
func (k ConfigKey) NormalizedKey() string {
	return strings.ToLower(k.raw)
}

// JoinConfigKeys joins a base and child key as "base.child".
func JoinConfigKeys(base, child ConfigKey) (ConfigKey, error) {
	return NewConfigKey(base.raw + "." + child.raw)
}
