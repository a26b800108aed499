// Package manifest deserializes an IP's manifest document: the `[ip]`
// table naming it and its version, plus optional `[dependencies]` and
// `[dev-dependencies]` tables mapping IP names to version literals
// (spec §4.F). Unknown fields anywhere are rejected.
package manifest

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/hdlpm/hdlpm/internal/ident"
)

// Manifest is the deserialized, validated form of a manifest document.
type Manifest struct {
	IP              IPInfo
	Dependencies    map[ident.Name]ident.Version
	DevDependencies map[ident.Name]ident.Version
}

// IPInfo is the `[ip]` table: the IP's own identity.
type IPInfo struct {
	Name    ident.Name
	Version ident.Version
	Source  string // optional, empty when absent
}

// document is the raw TOML shape, decoded strictly before validation
// converts it into Manifest's domain types.
type document struct {
	IP struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
		Source  string `toml:"source"`
	} `toml:"ip"`
	Dependencies    map[string]string `toml:"dependencies"`
	DevDependencies map[string]string `toml:"dev-dependencies"`
}

// Error is a manifest-level error: malformed document, unknown field,
// invalid IP name, or invalid version (spec §7's manifest-error
// taxonomy).
type Error struct {
	Kind    ErrorKind
	Message string
}

// ErrorKind classifies a manifest Error.
type ErrorKind int

const (
	MalformedDocument ErrorKind = iota
	UnknownField
	InvalidIPName
	InvalidVersion
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedDocument:
		return "malformed document"
	case UnknownField:
		return "unknown field"
	case InvalidIPName:
		return "invalid IP name"
	case InvalidVersion:
		return "invalid version"
	default:
		return "manifest error"
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("manifest: %s: %s", e.Kind, e.Message)
}

// Parse decodes raw TOML bytes into a validated Manifest. Decoding is
// strict: `toml.Decoder.DisallowUnknownFields` rejects any field not
// named in document, satisfying spec §4.F's "unknown fields anywhere
// are rejected" / invariant I4.
func Parse(data []byte) (*Manifest, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, &Error{Kind: UnknownField, Message: err.Error()}
		}
		return nil, &Error{Kind: MalformedDocument, Message: err.Error()}
	}
	return fromDocument(doc)
}

func fromDocument(doc document) (*Manifest, error) {
	name, err := ident.NewName(doc.IP.Name)
	if err != nil {
		return nil, &Error{Kind: InvalidIPName, Message: err.Error()}
	}
	version, err := ident.ParseVersion(doc.IP.Version)
	if err != nil {
		return nil, &Error{Kind: InvalidVersion, Message: err.Error()}
	}

	deps, err := parseVersionMap(doc.Dependencies)
	if err != nil {
		return nil, err
	}
	devDeps, err := parseVersionMap(doc.DevDependencies)
	if err != nil {
		return nil, err
	}

	return &Manifest{
		IP: IPInfo{
			Name:    name,
			Version: version,
			Source:  doc.IP.Source,
		},
		Dependencies:    deps,
		DevDependencies: devDeps,
	}, nil
}

func parseVersionMap(raw map[string]string) (map[ident.Name]ident.Version, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[ident.Name]ident.Version, len(raw))
	for k, v := range raw {
		name, err := ident.NewName(k)
		if err != nil {
			return nil, &Error{Kind: InvalidIPName, Message: err.Error()}
		}
		version, err := ident.ParseVersion(v)
		if err != nil {
			return nil, &Error{Kind: InvalidVersion, Message: err.Error()}
		}
		out[name] = version
	}
	return out, nil
}
