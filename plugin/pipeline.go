package plugin

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/drone/drone-xml-html/convert"
)

// summary is implemented by convert.TestSummary and convert.ElementSummary.
type summary[S any] interface {
	Merge(S) S
	Outputs() map[string]string
}

// pipeline binds one converter type to its plugin-level behaviour.
type pipeline[R any, S summary[S]] struct {
	newConverter func() *convert.Converter[R, S]
	defaultTitle string
	// fullSuffix names the file of the full page.
	fullSuffix string
	logSummary func(file string, s S)
}

var reportPipeline = pipeline[convert.TestRecord, convert.TestSummary]{
	newConverter: func() *convert.Converter[convert.TestRecord, convert.TestSummary] {
		return convert.NewTestReport()
	},
	defaultTitle: "Test Results Report",
	fullSuffix:   FormatFull,
	logSummary: func(file string, s convert.TestSummary) {
		logrus.Infof("Test Results Summary for %s: %d tests, %d passed, %d failed, %d errors | Suites: %d | Time: %ss",
			file, s.TotalTests, s.Passed, s.Failed, s.Errors, s.TotalSuites, s.FormattedTime())
	},
}

var elementsPipeline = pipeline[convert.ElementRecord, convert.ElementSummary]{
	newConverter: func() *convert.Converter[convert.ElementRecord, convert.ElementSummary] {
		return convert.NewElements()
	},
	defaultTitle: "XML Data Report",
	fullSuffix:   "report",
	logSummary: func(file string, s convert.ElementSummary) {
		logrus.Infof("XML Structure of %s: %d elements, %d unique types, max depth %d",
			file, s.TotalElements, s.UniqueElements, s.MaxDepth)
	},
}

// conversion is the mode-independent result of converting all files.
type conversion struct {
	documents  []Document
	outputs    map[string]string
	records    int
	fullSuffix string
}

// convertFiles converts each file with its own converter and aggregates the
// summaries. The first failing file aborts the whole conversion.
func convertFiles[R any, S summary[S]](ctx context.Context, p pipeline[R, S], files []string, args Args) (conversion, error) {
	var (
		total S
		conv  = conversion{fullSuffix: p.fullSuffix}
	)
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return conversion{}, err
		}

		c := p.newConverter()
		if err := processFile(c, file); err != nil {
			return conversion{}, err
		}

		s := c.Summary()
		p.logSummary(file, s)
		if i == 0 {
			total = s
		} else {
			total = total.Merge(s)
		}
		conv.records += len(c.Records())

		title := args.Title
		if title == "" {
			title = p.defaultTitle + " - " + filepath.Base(file)
		}
		conv.documents = append(conv.documents, Document{
			File:     file,
			Variants: renderVariants(c, title, args),
		})
	}
	conv.outputs = total.Outputs()
	return conv, nil
}

// processFile reads and converts one XML file.
func processFile[R any, S any](c *convert.Converter[R, S], filename string) error {
	logrus.Infof("Processing file: %s", filename)

	f, err := os.Open(filename)
	if err != nil {
		logger := logrus.WithError(err).WithField("File", filename)
		logger.Error("Failed to read file")
		if os.IsNotExist(err) {
			return &MissingInputError{Path: filename}
		}
		return errors.Wrap(err, "failed to read file")
	}
	defer f.Close()

	if err := c.ReadXML(f); err != nil {
		logger := logrus.WithError(err).WithField("File", filename)
		logger.Error("Failed to parse XML")
		return errors.Wrapf(err, "failed to process file %s", filename)
	}
	return nil
}

// renderVariants renders the formats selected by args.OutputFormat.
func renderVariants[R any, S any](c *convert.Converter[R, S], title string, args Args) []Variant {
	formats := []string{args.OutputFormat}
	if args.OutputFormat == FormatAll {
		formats = allFormats
	}

	variants := make([]Variant, 0, len(formats))
	for _, format := range formats {
		var html string
		switch format {
		case FormatTable:
			html = c.Table(tableOptions(args))
		case FormatSummary:
			html = c.SummaryHTML()
		case FormatCompact:
			html = c.Table(compactOptions(args))
		default:
			html = c.Page(convert.PageOptions{
				Title:          title,
				IncludeSummary: true,
				IncludeStyles:  args.IncludeStyles,
			})
		}
		variants = append(variants, Variant{Format: format, HTML: html})
	}
	return variants
}

func tableOptions(args Args) convert.TableOptions {
	return convert.TableOptions{
		IncludeStyles:  args.IncludeStyles,
		TableClass:     args.TableClass,
		ShowSuiteInfo:  args.ShowSuiteInfo,
		ShowTimestamps: args.ShowTimestamps,
		ShowAttributes: args.ShowAttributes,
		ShowHierarchy:  args.ShowHierarchy,
		MaxTextLength:  args.MaxTextLength,
	}
}

// compactOptions drops the suite, timestamp, hierarchy and attribute columns.
func compactOptions(args Args) convert.TableOptions {
	opts := tableOptions(args)
	opts.ShowSuiteInfo = false
	opts.ShowTimestamps = false
	opts.ShowAttributes = false
	opts.ShowHierarchy = false
	return opts
}
