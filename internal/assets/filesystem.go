package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader serves assets from a directory laid out like the embedded
// one. Every read goes through os.Root, so neither ".." nor a symlink can
// reach a file outside the directory.
type FilesystemLoader struct {
	dir string
}

// NewFilesystemLoader checks that dir is an existing directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}

	return &FilesystemLoader{dir: abs}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return readAsset(styleAsset, name, f.read)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return readAsset(templateAsset, name, f.read)
}

// read opens the directory per call so the loader holds no descriptor.
func (f *FilesystemLoader) read(name string) ([]byte, error) {
	root, err := os.OpenRoot(f.dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()
	return root.ReadFile(filepath.FromSlash(name))
}

var _ AssetLoader = (*FilesystemLoader)(nil)
