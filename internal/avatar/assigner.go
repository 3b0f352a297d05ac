// Package avatar selects and resolves profile-picture resource references.
// A resource reference is a string path to an externally stored image, not
// the image bytes.
package avatar

import (
	"strings"
	"sync"
)

var defaultCatalog = map[string][]string{
	"male": {
		"avatars/m1.png", "avatars/m2.png", "avatars/m3.png", "avatars/m4.png",
	},
	"female": {
		"avatars/f1.png", "avatars/f2.png", "avatars/f3.png", "avatars/f4.png",
	},
	"": {
		"avatars/n1.png", "avatars/n2.png", "avatars/n3.png",
	},
}

// Assigner hands out avatar resource references per gender tag, rotating
// through a fixed catalog. Assignment is a presentation convenience for
// rows with no picture; it is deterministic, not random.
type Assigner struct {
	mu      sync.Mutex
	catalog map[string][]string
	next    map[string]int
}

// NewAssigner creates an Assigner over the built-in catalog. Pass a non-nil
// catalog to override it (tests do).
func NewAssigner(catalog map[string][]string) *Assigner {
	if catalog == nil {
		catalog = defaultCatalog
	}
	return &Assigner{catalog: catalog, next: make(map[string]int)}
}

// Assign returns the next reference for the given gender tag. Unknown tags
// fall back to the neutral set; an empty catalog yields "".
func (a *Assigner) Assign(gender string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	g := strings.ToLower(strings.TrimSpace(gender))
	refs, ok := a.catalog[g]
	if !ok || len(refs) == 0 {
		refs = a.catalog[""]
	}
	if len(refs) == 0 {
		return ""
	}
	i := a.next[g] % len(refs)
	a.next[g]++
	return refs[i]
}
