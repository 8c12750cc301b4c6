package sn

import (
	"fmt"
	"strings"
	"time"
)

// Page sizes accepted by PageSettings.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures the PDF page.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, all sides
}

// DefaultPageSettings returns US Letter, portrait, half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks size, orientation and margin. A nil receiver is valid and
// means defaults. Comparisons ignore case.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns the paper width and height in inches.
func (p *PageSettings) dimensions() (width, height float64) {
	size := paperSizes[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return size[1], size[0]
	}
	return size[0], size[1]
}

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// Footer configures the PDF footer drawn by Chrome on every page.
type Footer struct {
	ShowPageNumber bool
	Date           string // literal, or "auto" / "auto:LAYOUT" resolved at conversion time
	Text           string
}

// Input is one document to convert.
type Input struct {
	Source   []byte        // SN document (required)
	BaseDir  string        // directory relative img:= paths resolve against in the PDF
	HTMLOnly bool          // skip PDF generation
	Page     *PageSettings // nil = defaults
	Footer   *Footer       // nil = no footer
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	Document *Document
	HTML     []byte
	PDF      []byte // nil when Input.HTMLOnly
}

// Option configures a Converter.
type Option func(*Converter)

type converterConfig struct {
	timeout       time.Duration
	styleInput    string
	resolvedStyle string
	hasStyle      bool
	assetPath     string
	highlight     bool
	mode          ParseMode
}

const defaultTimeout = 30 * time.Second

// WithTimeout bounds each PDF conversion.
// Panics if d <= 0, like time.NewTicker.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("sn: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle selects the stylesheet: an embedded style name ("default",
// "print"), a path to a CSS file, or raw CSS.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory searched for styles before the embedded ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithSyntaxHighlighting enables chroma highlighting of code blocks.
func WithSyntaxHighlighting(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.highlight = enabled
	}
}

// WithParseMode selects lenient or strict parsing.
func WithParseMode(mode ParseMode) Option {
	return func(c *Converter) {
		c.cfg.mode = mode
	}
}

// withClock replaces time.Now for footer date stamps.
func withClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.now = now
	}
}
