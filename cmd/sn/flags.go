package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	sn "github.com/alnah/go-supernotation"
)

// ErrUsage wraps flag and argument errors.
var ErrUsage = errors.New("usage error")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show details")
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	text       string
	date       string
	pageNumber bool
	disabled   bool
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.StringVar(&f.date, "footer-date", "", "footer date (\"auto\" = today)")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// newFlagSet returns a ContinueOnError FlagSet whose usage goes to env.Stderr.
func newFlagSet(name string, usage func(io.Writer), env *Environment) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { usage(env.Stderr) }
	return fs
}

// parseArgs parses args and returns the single positional argument.
func parseArgs(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrUsage, err)
	}
	switch fs.NArg() {
	case 0:
		return "", fmt.Errorf("%w: %s requires a FILE argument", ErrUsage, fs.Name())
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("%w: %s takes one FILE argument, got %d", ErrUsage, fs.Name(), fs.NArg())
	}
}

// parseMode maps the strict switch onto a parser mode.
func parseMode(strict bool) sn.ParseMode {
	if strict {
		return sn.Strict
	}
	return sn.Lenient
}
