package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/dhabedank/genchecklist/internal/core"
)

// Result summarizes what an adapter wrote.
type Result struct {
	Tables int  // one per group
	Rows   int  // one per item
	Empty  bool // the checklist had no groups
}

// Adapter is the interface all export adapters implement.
type Adapter interface {
	// Name returns the adapter identifier for logging.
	Name() string

	// Extension is the file extension without the dot.
	Extension() string

	// Write renders checklist to w.
	Write(w io.Writer, checklist core.Checklist, config Config) (*Result, error)
}

// Config configures one export.
type Config struct {
	// Title heads the document. Defaults to the domain title.
	Title string

	// GeneratedAt is printed on the document and used in file names.
	GeneratedAt time.Time
}

// DefaultConfig returns the config for exporting a checklist of domain d now.
func DefaultConfig(d core.Domain) Config {
	config := Config{GeneratedAt: time.Now()}
	if spec, ok := d.Spec(); ok {
		config.Title = spec.Title
	}
	return config
}

// NewAdapter returns the adapter for format ("pdf" or "json").
func NewAdapter(format string) (Adapter, error) {
	switch strings.ToLower(format) {
	case "", "pdf":
		return NewPDFAdapter(), nil
	case "json":
		return NewJSONAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown export format: %s", format)
	}
}

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// FileName builds the download name for an export, e.g.
// GenChecklist_new-beginnings_Starting_Over_2026-01-02.pdf.
func FileName(d core.Domain, title string, at time.Time, ext string) string {
	sanitized := nonWordPattern.ReplaceAllString(title, "")
	sanitized = whitespacePattern.ReplaceAllString(sanitized, "_")
	return fmt.Sprintf("GenChecklist_%s_%s_%s.%s", d.Slug(), sanitized, at.Format(time.DateOnly), ext)
}
