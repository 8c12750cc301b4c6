// Package sn interprets Super Notation (SN) documents.
//
// SN is a small line-oriented markup: a document opens with the literal
// header line <super-notation-v1>, optionally lists meta: entries, and then
// carries one command per line (title:, para:, olist:, code:, ...).
//
// # Quick Start
//
// Parse and render a document:
//
//	doc, err := sn.Parse(content)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := sn.Render(doc)
//
// Use strict mode to reject unknown commands instead of keeping them as
// Unknown nodes:
//
//	doc, err := sn.Parse(content, sn.WithMode(sn.Strict))
//
// # Signing
//
// A document can be fingerprinted with a keyless SHA-256 digest. The digest
// covers the canonical bytes of the file: BOM removed, line endings
// normalized to LF, and everything from the first sign: line onwards cut off.
// Signing appends a blank line, a sign: line and a close: seal marker:
//
//	sig, err := sn.SignFile("notes.sn", true)
//	v, err := sn.VerifyFile("notes.sn")
//	fmt.Println(v.Message())
//
// The byte-level variants (SignContent, VerifyContent, UnsignContent) work on
// in-memory content and never touch the filesystem.
//
// # Conversion
//
// Converter bundles parsing, HTML rendering and optional PDF export through
// headless Chrome (go-rod):
//
//	conv, err := sn.NewConverter(sn.WithStyle("default"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, sn.Input{Source: content, HTMLOnly: true})
//
// For batch conversion, ConverterPool manages several converters, each with
// its own browser instance.
package sn
