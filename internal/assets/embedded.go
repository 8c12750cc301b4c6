package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles templates
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(styleAsset, name, embedded.ReadFile)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(templateAsset, name, embedded.ReadFile)
}

// Styles returns the names of all embedded styles, sorted.
func (e *EmbeddedLoader) Styles() []string {
	entries, err := fs.ReadDir(embedded, styleAsset.dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), styleAsset.ext); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
