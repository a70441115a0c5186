// Package convert turns parsed XML documents into HTML tables, summary
// blocks and standalone report pages.
//
// A Converter is generic over the record type it extracts and the summary
// it aggregates. The pipeline-specific parts (which elements become rows,
// which columns are shown, how the summary looks) live in a Strategy.
// NewTestReport and NewElements return converters for JUnit-style reports
// and for arbitrary XML respectively.
//
// A Converter holds the state of exactly one loaded document and must not
// be shared between goroutines.
package convert

import (
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/drone/drone-xml-html/xmltree"
)

// Strategy supplies the extraction and layout rules of one pipeline.
type Strategy[R any, S any] interface {
	// Extract flattens the document into records in document order.
	Extract(root xmltree.Node) []R
	// Summarize aggregates records of one loaded document.
	Summarize(records []R) S

	Columns(opts TableOptions) []Column[R]
	DefaultTableClass() string
	TableStyles(tableClass string) string
	EmptyTable() string

	SummaryHTML(summary S) string
	EmptySummary() string

	Chrome() Chrome
}

// Converter owns the records and summary of the last loaded document.
type Converter[R any, S any] struct {
	strategy Strategy[R, S]
	provider xmltree.Provider

	records []R
	summary S
}

// New returns a converter driven by strategy. A nil provider selects
// xmltree.DecoderProvider.
func New[R any, S any](strategy Strategy[R, S], provider xmltree.Provider) *Converter[R, S] {
	if provider == nil {
		provider = xmltree.DecoderProvider{}
	}
	return &Converter[R, S]{strategy: strategy, provider: provider}
}

// ReadXML parses a document and replaces the current records and summary.
// On a parse error the previous state is discarded and nothing is extracted.
func (c *Converter[R, S]) ReadXML(r io.Reader) error {
	var zero S
	c.records, c.summary = nil, zero

	root, err := c.provider.Parse(r)
	if err != nil {
		return errors.Wrap(err, "failed to read XML")
	}

	c.records = c.strategy.Extract(root)
	c.summary = c.strategy.Summarize(c.records)
	return nil
}

// ReadXMLString is ReadXML for in-memory documents.
func (c *Converter[R, S]) ReadXMLString(s string) error {
	return c.ReadXML(strings.NewReader(s))
}

// Records returns the extracted records.
func (c *Converter[R, S]) Records() []R { return c.records }

// Summary returns the aggregate of the extracted records.
func (c *Converter[R, S]) Summary() S { return c.summary }

// Table renders the records as an HTML table.
func (c *Converter[R, S]) Table(opts TableOptions) string {
	return RenderTable(c.strategy, c.records, opts)
}

// SummaryHTML renders the summary block, or a placeholder when nothing was
// extracted.
func (c *Converter[R, S]) SummaryHTML() string {
	if len(c.records) == 0 {
		return c.strategy.EmptySummary()
	}
	return c.strategy.SummaryHTML(c.summary)
}

// Page renders a complete standalone HTML document.
func (c *Converter[R, S]) Page(opts PageOptions) string {
	var summary string
	if opts.IncludeSummary {
		summary = c.SummaryHTML()
	}
	tableOpts := DefaultTableOptions()
	tableOpts.IncludeStyles = opts.IncludeStyles
	return RenderPage(c.strategy.Chrome(), opts.Title, summary, c.Table(tableOpts))
}

type config struct {
	provider xmltree.Provider
	location *time.Location
	now      func() time.Time
}

// Option configures the converters built by NewTestReport and NewElements.
type Option func(*config)

// WithProvider replaces the XML tree provider.
func WithProvider(p xmltree.Provider) Option {
	return func(c *config) { c.provider = p }
}

// WithLocation sets the time zone used to display timestamps.
func WithLocation(loc *time.Location) Option {
	return func(c *config) { c.location = loc }
}

// WithClock sets the clock used for "generated on" headers.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

func newConfig(opts []Option) config {
	cfg := config{
		provider: xmltree.DecoderProvider{},
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewTestReport returns a converter for JUnit-style test reports.
func NewTestReport(opts ...Option) *Converter[TestRecord, TestSummary] {
	cfg := newConfig(opts)
	return New[TestRecord, TestSummary](&TestReport{Location: cfg.location}, cfg.provider)
}

// NewElements returns a converter for arbitrary XML documents.
func NewElements(opts ...Option) *Converter[ElementRecord, ElementSummary] {
	cfg := newConfig(opts)
	return New[ElementRecord, ElementSummary](&Elements{Location: cfg.location, Now: cfg.now}, cfg.provider)
}
