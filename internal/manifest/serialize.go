package manifest

import (
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/hdlpm/hdlpm/internal/ident"
)

// Marshal serializes m back to TOML bytes. Dependency keys are sorted
// alphabetically for deterministic output; spec §4.F leaves hashmap
// ordering implementation-defined, so this is a choice, not a
// requirement (see DESIGN.md).
func (m *Manifest) Marshal() ([]byte, error) {
	doc := document{
		Dependencies:    toStringMap(m.Dependencies),
		DevDependencies: toStringMap(m.DevDependencies),
	}
	doc.IP.Name = m.IP.Name.String()
	doc.IP.Version = m.IP.Version.String()
	doc.IP.Source = m.IP.Source

	return toml.Marshal(doc)
}

func toStringMap(in map[ident.Name]ident.Version) map[string]string {
	if len(in) == 0 {
		return nil
	}
	keys := make([]ident.Name, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	out := make(map[string]string, len(in))
	for _, k := range keys {
		out[k.String()] = in[k].String()
	}
	return out
}
