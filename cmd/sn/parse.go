package main

import (
	"context"
	"fmt"

	sn "github.com/alnah/go-supernotation"
	"github.com/alnah/go-supernotation/internal/yamlutil"
)

// parseFlags holds flags for the parse command.
type parseFlags struct {
	common commonFlags
	strict bool
	dump   bool
}

// documentDump is the YAML shape written by parse --dump.
type documentDump struct {
	Version   string     `yaml:"version"`
	Title     string     `yaml:"title"`
	Metadata  []string   `yaml:"metadata,omitempty"`
	Nodes     []nodeDump `yaml:"nodes"`
	Signature string     `yaml:"signature,omitempty"`
	Sealed    bool       `yaml:"sealed"`
}

type nodeDump struct {
	Kind     string   `yaml:"kind"`
	Text     string   `yaml:"text,omitempty"`
	ID       string   `yaml:"id,omitempty"`
	URL      string   `yaml:"url,omitempty"`
	Path     string   `yaml:"path,omitempty"`
	Alt      string   `yaml:"alt,omitempty"`
	Location string   `yaml:"location,omitempty"`
	Style    string   `yaml:"style,omitempty"`
	Items    []string `yaml:"items,omitempty"`
	Code     string   `yaml:"code,omitempty"`
	Value    string   `yaml:"value,omitempty"`
	Raw      string   `yaml:"raw,omitempty"`
}

func runParse(_ context.Context, args []string, env *Environment) error {
	fs := newFlagSet("parse", printParseUsage, env)
	f := &parseFlags{}
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.strict, "strict", false, "fail on unknown commands")
	fs.BoolVar(&f.dump, "dump", false, "write the parsed document as YAML")

	path, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	cfg, _, err := loadSettings(f.common.config, env)
	if err != nil {
		return err
	}

	doc, err := sn.ParseFile(path, sn.WithMode(parseMode(f.strict || cfg.Parse.Strict)))
	if err != nil {
		return fmt.Errorf("✗ Parse error: %w", err)
	}

	if f.dump {
		out, err := yamlutil.Marshal(dumpDocument(doc))
		if err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		_, err = env.Stdout.Write(out)
		return err
	}
	if f.common.quiet {
		return nil
	}

	fmt.Fprintf(env.Stdout, "✓ Successfully parsed: %s\n", path)
	fmt.Fprintf(env.Stdout, "  Version: %s\n", doc.Version)
	fmt.Fprintf(env.Stdout, "  Metadata entries: %d\n", len(doc.Metadata))
	fmt.Fprintf(env.Stdout, "  Content nodes: %d\n", len(doc.Nodes))
	fmt.Fprintf(env.Stdout, "  Signed: %t\n", doc.HasSignature())
	fmt.Fprintf(env.Stdout, "  Sealed: %t\n", doc.Sealed)

	if f.common.verbose {
		fmt.Fprintln(env.Stdout, "\n--- Document Structure ---")
		for i, n := range doc.Nodes {
			fmt.Fprintf(env.Stdout, "%d. %s\n", i+1, n.Kind())
		}
	}
	return nil
}

func dumpDocument(doc *sn.Document) documentDump {
	d := documentDump{
		Version:   doc.Version,
		Title:     doc.Title(),
		Nodes:     make([]nodeDump, 0, len(doc.Nodes)),
		Signature: doc.Signature,
		Sealed:    doc.Sealed,
	}
	for _, m := range doc.Metadata {
		d.Metadata = append(d.Metadata, m.Content)
	}
	for _, n := range doc.Nodes {
		d.Nodes = append(d.Nodes, dumpNode(n))
	}
	return d
}

func dumpNode(n sn.Node) nodeDump {
	d := nodeDump{Kind: n.Kind().String()}
	switch n := n.(type) {
	case sn.Meta:
		d.Text = n.Content
	case sn.Title:
		d.Text = n.Text
	case sn.SectionDef:
		d.ID = n.ID
	case sn.SectionLink:
		d.ID, d.Text = n.ID, n.Text
	case sn.Paragraph:
		d.Text = n.Text
	case sn.List:
		d.Style, d.Items = string(n.Style), n.Items
	case sn.CodeBlock:
		d.Code = n.Code
	case sn.Image:
		d.Path, d.Alt = n.Path, n.Alt
	case sn.Link:
		d.URL = n.URL
	case sn.LinkText:
		d.URL, d.Text = n.URL, n.Text
	case sn.OpenSN:
		d.Location, d.Text = n.Location, n.Text
	case sn.EndNewSN:
		d.Path = n.Path
	case sn.Signature:
		d.Value = n.Value
	case sn.Unknown:
		d.Raw = n.Raw
	}
	return d
}
