package analyze

import (
	"go/types"
	"sort"
)

// ImportSet renders types as seen from one package and collects the
// packages the rendered strings refer to.
type ImportSet struct {
	pkgPath string
	names   map[string]string // path -> package name
}

// NewImportSet creates an ImportSet for code living in pkgPath.
func NewImportSet(pkgPath string) *ImportSet {
	return &ImportSet{
		pkgPath: pkgPath,
		names:   make(map[string]string),
	}
}

// TypeString returns t qualified relative to the package, e.g. "Theme",
// "time.Duration" or "map[string][]Tag".
func (s *ImportSet) TypeString(t types.Type) string {
	return types.TypeString(t, s.qualify)
}

func (s *ImportSet) qualify(p *types.Package) string {
	if p.Path() == s.pkgPath {
		return ""
	}

	s.names[p.Path()] = p.Name()

	return p.Name()
}

// Paths returns the referenced import paths, sorted.
func (s *ImportSet) Paths() []string {
	paths := make([]string, 0, len(s.names))
	for p := range s.names {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}
