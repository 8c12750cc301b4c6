package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// AssetLoader loads stylesheets and templates by name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or an error wrapping ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html or an error wrapping
	// ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// assetKind says where one kind of asset lives and how its absence is reported.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleAsset    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateAsset = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// readAsset validates name and reads the slash-separated asset path with read.
func readAsset(kind assetKind, name string, read func(name string) ([]byte, error)) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := read(path.Join(kind.dir, name+kind.ext))
	switch {
	case err == nil:
		return string(content), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.notFound, name)
	default:
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
}
