package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	sn "github.com/alnah/go-supernotation"
)

// infoFlags holds flags for the info command.
type infoFlags struct {
	common commonFlags
	strict bool
}

func runInfo(_ context.Context, args []string, env *Environment) error {
	fs := newFlagSet("info", printInfoUsage, env)
	f := &infoFlags{}
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown commands")

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	cfg, _, err := loadSettings(f.common.config, env)
	if err != nil {
		return err
	}

	// One read serves both the parse and the signature check.
	raw, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", sn.ErrReadFile, err)
	}
	doc, err := sn.Parse(string(raw), sn.WithMode(parseMode(f.strict || cfg.Parse.Strict)))
	if err != nil {
		return fmt.Errorf("✗ Parse error: %w", err)
	}

	w := env.Stdout
	fmt.Fprintf(w, "File: %s\n", path)
	fmt.Fprintf(w, "Version: %s\n", doc.Version)
	fmt.Fprintf(w, "Metadata entries: %d\n", len(doc.Metadata))
	fmt.Fprintf(w, "Content nodes: %d\n", len(doc.Nodes))
	fmt.Fprintf(w, "Signed: %t\n", doc.HasSignature())
	fmt.Fprintf(w, "Sealed: %t\n", doc.Sealed)

	if doc.HasSignature() {
		if sn.VerifyContent(raw).Valid {
			fmt.Fprintln(w, "Signature: ✓ VALID")
		} else {
			fmt.Fprintln(w, "Signature: ✗ INVALID")
		}
	}
	for _, n := range doc.Nodes {
		if t, ok := n.(sn.Title); ok {
			fmt.Fprintf(w, "Title: %s\n", t.Text)
			break
		}
	}

	if !f.common.verbose {
		return nil
	}
	if len(doc.Metadata) > 0 {
		fmt.Fprintln(w, "\nMetadata:")
		for _, m := range doc.Metadata {
			fmt.Fprintf(w, "  %s\n", m.Content)
		}
	}
	if sections := doc.Sections(); len(sections) > 0 {
		fmt.Fprintf(w, "\nSections: %s\n", strings.Join(sections, ", "))
	}
	if missing := doc.UndefinedSections(); len(missing) > 0 {
		fmt.Fprintf(w, "\nUndefined section links: %s\n", strings.Join(missing, ", "))
	}
	return nil
}
