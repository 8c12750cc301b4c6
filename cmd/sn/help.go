package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-supernotation/internal/config"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  parse      Parse a document and report its structure")
	fmt.Fprintln(w, "  render     Render documents to HTML or PDF")
	fmt.Fprintln(w, "  sign       Sign and seal a document")
	fmt.Fprintln(w, "  verify     Check a document signature")
	fmt.Fprintln(w, "  unsign     Remove a signature and seal")
	fmt.Fprintln(w, "  info       Show document information")
	fmt.Fprintln(w, "  import     Convert Markdown into a document")
	fmt.Fprintln(w, "  serve      Preview a directory of documents in the browser")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'sn help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default: "+config.SearchDescription()+")")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show details")
}

func printParseUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn parse <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse a document and report its structure.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --strict              Fail on unknown commands")
	fmt.Fprintln(w, "      --dump                Write the parsed document as YAML")
	printCommonFlags(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a document, or every .sn file under a directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for directory input")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --strict              Fail on unknown commands")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name (default, print) or CSS file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory searched for styles first")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Write PDF instead of HTML")
	fmt.Fprintln(w, "      --html                With --pdf, also write the HTML")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Footer:")
	fmt.Fprintln(w, "      --footer-text <s>     Custom footer text")
	fmt.Fprintln(w, "      --footer-date <s>     Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --footer-page-number  Show page numbers")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	printCommonFlags(w)
}

func printSignUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn sign <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Append a sign: line and a close: seal, replacing any existing ones.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -n, --dry-run             Print the signature the signed file would carry")
	fmt.Fprintln(w, "                            (it covers the rewritten body, so it can differ")
	fmt.Fprintln(w, "                            from a hash of the unsigned file as it stands)")
	printCommonFlags(w)
}

func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn verify <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the signature. Exits 1 when it is missing or does not match.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printCommonFlags(w)
}

func printUnsignUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn unsign <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove every sign: line and close: seal.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	printCommonFlags(w)
}

func printInfoUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn info <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show document information. --verbose adds metadata and sections.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --strict              Fail on unknown commands")
	printCommonFlags(w)
}

func printImportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn import <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown into a document.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .sn)")
	fmt.Fprintln(w, "      --title <s>           Title when there is no level-one heading")
	fmt.Fprintln(w, "      --meta <s>            Extra meta: line (repeatable)")
	fmt.Fprintln(w, "      --sign                Sign and seal the result")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing output file")
	printCommonFlags(w)
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: sn serve [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a directory of documents as HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --strict              Fail on unknown commands")
	fmt.Fprintln(w, "      --style <s>           Style name or CSS file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory searched for styles first")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight code blocks")
	printCommonFlags(w)
}

var commandUsage = map[string]func(io.Writer){
	"parse":  printParseUsage,
	"render": printRenderUsage,
	"sign":   printSignUsage,
	"verify": printVerifyUsage,
	"unsign": printUnsignUsage,
	"info":   printInfoUsage,
	"import": printImportUsage,
	"serve":  printServeUsage,
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: sn version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: sn help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		usage, ok := commandUsage[args[0]]
		if !ok {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
			printUsage(env.Stderr)
			return ExitUsage
		}
		usage(env.Stdout)
	}
	return ExitSuccess
}
