package languages

import (
	"sort"

	"github.com/getlawrence/antiplag/internal/domain"
)

// LanguageRegistry is the closed set of languages the engine accepts.
type LanguageRegistry struct {
	langs map[string]Language
}

// DefaultRegistry holds python, cpp and java.
var DefaultRegistry = NewDefaultRegistry()

func NewLanguageRegistry() *LanguageRegistry {
	return &LanguageRegistry{
		langs: make(map[string]Language),
	}
}

// NewDefaultRegistry returns a registry populated with the built-in languages.
func NewDefaultRegistry() *LanguageRegistry {
	r := NewLanguageRegistry()
	for _, l := range defaultLanguages() {
		r.Register(l)
	}
	return r
}

func (r *LanguageRegistry) Register(lang Language) {
	r.langs[lang.ID] = lang
}

func (r *LanguageRegistry) Get(id string) (Language, bool) {
	l, ok := r.langs[id]
	return l, ok
}

// Classify returns the detector family for id. Unknown ids never fall back
// to a default family.
func (r *LanguageRegistry) Classify(id string) (Family, error) {
	l, ok := r.langs[id]
	if !ok {
		return "", domain.NewLanguageError(id)
	}
	return l.Family, nil
}

// Extension returns the sandbox file extension for id.
func (r *LanguageRegistry) Extension(id string) (string, error) {
	l, ok := r.langs[id]
	if !ok {
		return "", domain.NewLanguageError(id)
	}
	return l.Extension, nil
}

// Supported returns the accepted ids, sorted.
func (r *LanguageRegistry) Supported() []string {
	ids := make([]string, 0, len(r.langs))
	for id := range r.langs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns a copy of the registered languages
func (r *LanguageRegistry) All() map[string]Language {
	out := make(map[string]Language, len(r.langs))
	for k, v := range r.langs {
		out[k] = v
	}
	return out
}

// FromLinguist maps a linguist language name to a registered id.
func (r *LanguageRegistry) FromLinguist(name string) (string, bool) {
	for id, l := range r.langs {
		if l.Linguist == name {
			return id, true
		}
	}
	return "", false
}
