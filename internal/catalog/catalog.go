// Package catalog defines the collaborator contracts CORE consumes
// for IP discovery (spec §6) and ships one trivial, in-process
// implementation — DirCatalog — backed by a plain filesystem, with no
// network fetch, installers, or caching of its own (those remain
// external per spec.md's Non-goals).
package catalog

import (
	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/manifest"
)

// FilesystemProvider is the out-of-scope filesystem collaborator CORE
// reads through, kept narrow so a caller can swap in an in-memory or
// remote-backed implementation without touching CORE.
type FilesystemProvider interface {
	// Walk enumerates every regular file under root, recursively.
	Walk(root string) ([]string, error)
	// ReadFile returns path's contents decoded as UTF-8 text.
	ReadFile(path string) (string, error)
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
}

// Catalog is the out-of-scope IP registry collaborator CORE resolves
// dependencies against.
type Catalog interface {
	// IPs lists every IP name known to the catalog.
	IPs() []ident.Name
	// Versions lists the versions available for name.
	Versions(name ident.Name) ([]ident.Version, error)
	// Sources lists the HDL source file paths belonging to name at v.
	Sources(name ident.Name, v ident.Version) ([]string, error)
	// Manifest returns the parsed manifest for name at v.
	Manifest(name ident.Name, v ident.Version) (*manifest.Manifest, error)
}
