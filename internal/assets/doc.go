// Package assets provides the stylesheets and HTML templates used when
// rendering SN documents.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// Stylesheets are opaque to the renderer: their content is copied into the
// <style> element of the rendered page.
//
// # Directory Structure
//
//	{dir}/
//	├── styles/
//	│   └── {name}.css           # e.g. default.css, print.css
//	└── templates/
//	    └── {name}.html          # e.g. index.html (preview server listing)
//
// # Security
//
// Names must be plain identifiers (see ValidateAssetName). FilesystemLoader
// reads through os.Root, so a symlink inside the directory cannot expose a
// file outside it.
package assets
