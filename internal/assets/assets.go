package assets

// Built-in asset names.
const (
	// DefaultStyleName is the stylesheet embedded in rendered HTML by default.
	DefaultStyleName = "default"

	// PrintStyleName is tuned for PDF export (no page width cap, no shadows).
	PrintStyleName = "print"

	// IndexTemplateName lists documents in the preview server.
	IndexTemplateName = "index"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the default embedded loader.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
