package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-supernotation/internal/config"
	"github.com/alnah/go-supernotation/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .sn extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the documents under inputPath and their output paths.
// For a single file, flagOutput names the output file; for a directory it
// names the output root, falling back to configDir, then to the source
// directory.
func discoverFiles(inputPath, flagOutput, configDir, ext string) ([]FileToRender, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsSNFile(inputPath) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, inputPath)
		}
		outPath := flagOutput
		if outPath == "" {
			outPath = resolveOutputPath(inputPath, configDir, "", ext)
		}
		return []FileToRender{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	outputDir := flagOutput
	if outputDir == "" {
		outputDir = configDir
	}

	var files []FileToRender
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsSNFile(path) {
			return nil
		}
		files = append(files, FileToRender{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath, ext),
		})
		return nil
	})
	return files, err
}

// resolveOutputPath swaps the extension and, with an output directory,
// mirrors the path relative to baseInputDir under it.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	name := fileutil.ReplaceExt(inputPath, ext)
	if outputDir == "" {
		return name
	}
	if baseInputDir == "" {
		return filepath.Join(outputDir, filepath.Base(name))
	}
	rel, err := filepath.Rel(baseInputDir, name)
	if err != nil {
		return filepath.Join(outputDir, filepath.Base(name))
	}
	return filepath.Join(outputDir, rel)
}

func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
