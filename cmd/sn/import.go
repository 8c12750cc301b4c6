package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/dateutil"
	"github.com/alnah/go-supernotation/internal/fileutil"
	"github.com/alnah/go-supernotation/internal/mdimport"
)

// ErrOutputExists is returned when import would overwrite a file without --force.
var ErrOutputExists = errors.New("output file already exists")

// importFlags holds flags for the import command.
type importFlags struct {
	common commonFlags
	output string
	title  string
	meta   []string
	sign   bool
	force  bool
}

func runImport(_ context.Context, args []string, env *Environment) error {
	fs := newFlagSet("import", printImportUsage, env)
	f := &importFlags{}
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output .sn file (default: input with .sn)")
	fs.StringVar(&f.title, "title", "", "title when the Markdown has no level-one heading")
	fs.StringArrayVar(&f.meta, "meta", nil, "extra meta: line (repeatable)")
	fs.BoolVar(&f.sign, "sign", false, "sign and seal the result")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing output file")

	input, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = fileutil.ReplaceExt(input, fileutil.SNExtension)
	}
	if !f.force && fileutil.FileExists(output) {
		return fmt.Errorf("%w: %s (use --force to replace it)", ErrOutputExists, output)
	}

	src, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", sn.ErrReadFile, err)
	}

	imported, err := dateutil.Resolve("auto", env.Now())
	if err != nil {
		return err
	}
	meta := append([]string{
		"source: " + filepath.Base(input),
		"imported: " + imported,
	}, f.meta...)

	doc, err := mdimport.Convert(src, mdimport.WithTitle(f.title), mdimport.WithMeta(meta...))
	if err != nil {
		return fmt.Errorf("importing %s: %w", input, err)
	}

	var signature string
	if f.sign {
		doc, signature = sn.SignContent(doc)
	}

	if err := fileutil.ReplaceFile(output, doc); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	if f.common.quiet {
		return nil
	}
	fmt.Fprintf(env.Stdout, "✓ Imported to: %s\n", output)
	if f.sign {
		fmt.Fprintf(env.Stdout, "  Signature: %s\n", signature)
	}
	return nil
}
