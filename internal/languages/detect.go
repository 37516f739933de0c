package languages

import (
	"fmt"

	"github.com/go-enry/go-enry/v2"
)

// DetectFile infers the registry id of a source file from its name and,
// when the extension is ambiguous, its content.
func (r *LanguageRegistry) DetectFile(path string, content []byte) (string, error) {
	name, safe := enry.GetLanguageByExtension(path)
	if !safe || name == "" {
		name = enry.GetLanguage(path, content)
	}
	if name == "" {
		return "", fmt.Errorf("could not detect language of %s", path)
	}
	id, ok := r.FromLinguist(name)
	if !ok {
		return "", fmt.Errorf("language %q of %s is not supported", name, path)
	}
	return id, nil
}
