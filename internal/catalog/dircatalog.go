package catalog

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hdlpm/hdlpm/internal/ident"
	"github.com/hdlpm/hdlpm/internal/manifest"
)

// DirCatalog is a Catalog backed by a directory tree laid out as
// <root>/<ip-name>/<version>/, each holding a manifest.toml plus HDL
// source files — enough to run the resolver against a directory of
// IPs on disk without Git/HTTPS fetch or an installer (spec §6).
type DirCatalog struct {
	root string
	fs   FilesystemProvider
}

// NewDirCatalog checks only that root exists; it caches nothing, so
// IPs/Versions/Sources/Manifest read the filesystem on every call.
func NewDirCatalog(root string, fs FilesystemProvider) (*DirCatalog, error) {
	if !fs.Exists(root) {
		return nil, fmt.Errorf("catalog: root %q does not exist", root)
	}
	return &DirCatalog{root: root, fs: fs}, nil
}

func (c *DirCatalog) IPs() []ident.Name {
	entries := c.listDirs(c.root)
	var names []ident.Name
	for _, e := range entries {
		if n, err := ident.NewName(e); err == nil {
			names = append(names, n)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i].String() < names[j].String() })
	return names
}

func (c *DirCatalog) Versions(name ident.Name) ([]ident.Version, error) {
	dir := filepath.Join(c.root, name.String())
	if !c.fs.Exists(dir) {
		return nil, fmt.Errorf("catalog: IP %q not found", name)
	}
	var versions []ident.Version
	for _, e := range c.listDirs(dir) {
		v, err := ident.ParseVersion(e)
		if err != nil {
			continue
		}
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Less(versions[j]) })
	return versions, nil
}

func (c *DirCatalog) Sources(name ident.Name, v ident.Version) ([]string, error) {
	dir := c.versionDir(name, v)
	files, err := c.fs.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: walking %q: %w", dir, err)
	}
	var sources []string
	for _, f := range files {
		if LanguageOf(f) != Unknown {
			sources = append(sources, f)
		}
	}
	sort.Strings(sources)
	return sources, nil
}

func (c *DirCatalog) Manifest(name ident.Name, v ident.Version) (*manifest.Manifest, error) {
	path := filepath.Join(c.versionDir(name, v), "manifest.toml")
	text, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading manifest for %s %s: %w", name, v, err)
	}
	return manifest.Parse([]byte(text))
}

func (c *DirCatalog) versionDir(name ident.Name, v ident.Version) string {
	return filepath.Join(c.root, name.String(), v.String())
}

// listDirs lists dir's direct children, filtered to the names
// implied by the paths Walk returns beneath one level of nesting.
func (c *DirCatalog) listDirs(dir string) []string {
	files, err := c.fs.Walk(dir)
	if err != nil {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, f := range files {
		rel := strings.TrimPrefix(f, dir+string(filepath.Separator))
		if rel == f {
			continue
		}
		parts := strings.SplitN(rel, string(filepath.Separator), 2)
		if len(parts) < 2 {
			continue // file directly in dir, not inside a child directory
		}
		if !seen[parts[0]] {
			seen[parts[0]] = true
			out = append(out, parts[0])
		}
	}
	return out
}
