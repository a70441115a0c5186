package convert

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape replaces the five HTML special characters with entities.
// Ampersands are handled in the same pass, so existing entities in s are
// escaped once and never twice.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Truncate cuts s to limit characters and appends "..." when it is longer.
// A non-positive limit disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

var tableClassPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidTableClass reports whether name can be used both as a class
// attribute and as a CSS class selector.
func ValidTableClass(name string) bool {
	return tableClassPattern.MatchString(name)
}

// TableOptions controls RenderTable. Toggles that do not apply to a
// pipeline are ignored by it.
type TableOptions struct {
	IncludeStyles bool
	// TableClass names the table's class attribute and prefixes every
	// generated CSS selector. Empty or invalid names select the pipeline
	// default.
	TableClass string

	ShowSuiteInfo  bool
	ShowTimestamps bool

	ShowAttributes bool
	ShowHierarchy  bool
	MaxTextLength  int
}

// DefaultTableOptions returns options with styles and every column enabled.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		IncludeStyles:  true,
		ShowSuiteInfo:  true,
		ShowTimestamps: true,
		ShowAttributes: true,
		ShowHierarchy:  true,
		MaxTextLength:  100,
	}
}

// Column describes one table column.
type Column[R any] struct {
	Header string
	Value  func(R) string
	// Class returns the cell's class attribute; nil means none.
	Class func(R) string
	// Safe marks values produced by the converter itself, such as
	// formatted numbers, which are inserted without escaping.
	Safe bool
}

// RenderTable renders records as an HTML table using the columns of the
// strategy. An empty record set yields the strategy's placeholder paragraph.
func RenderTable[R any, S any](s Strategy[R, S], records []R, opts TableOptions) string {
	if len(records) == 0 {
		return s.EmptyTable()
	}

	tableClass := opts.TableClass
	if !ValidTableClass(tableClass) {
		tableClass = s.DefaultTableClass()
	}
	columns := s.Columns(opts)

	var sb strings.Builder
	if opts.IncludeStyles {
		sb.WriteString(s.TableStyles(tableClass))
	}

	fmt.Fprintf(&sb, `<table class="%s">`, Escape(tableClass))
	sb.WriteString("<thead><tr>")
	for _, col := range columns {
		fmt.Fprintf(&sb, "<th>%s</th>", col.Header)
	}
	sb.WriteString("</tr></thead>")

	sb.WriteString("<tbody>")
	for _, rec := range records {
		sb.WriteString("<tr>")
		for _, col := range columns {
			value := col.Value(rec)
			if !col.Safe {
				value = Escape(value)
			}
			if col.Class != nil {
				fmt.Fprintf(&sb, `<td class="%s">%s</td>`, col.Class(rec), value)
			} else {
				fmt.Fprintf(&sb, "<td>%s</td>", value)
			}
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody>")
	sb.WriteString("</table>")

	return sb.String()
}

// PageOptions controls Converter.Page.
type PageOptions struct {
	// Title defaults to the pipeline's title when empty.
	Title          string
	IncludeSummary bool
	IncludeStyles  bool
}

// Chrome is the page decoration of a pipeline.
type Chrome struct {
	DefaultTitle string
	// Styles is the CSS embedded in the page head.
	Styles string
	// Header renders the page heading from an already escaped title.
	Header func(title string) string
}

// RenderPage assembles a self-contained HTML document. Every style is
// inlined; the page references no external resources.
func RenderPage(chrome Chrome, title, summaryHTML, tableHTML string) string {
	if title == "" {
		title = chrome.DefaultTitle
	}
	title = Escape(title)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>%s</style>
</head>
<body>
    <div class="container">
        %s
        <div class="content">
            %s
            %s
        </div>
    </div>
</body>
</html>`, title, chrome.Styles, chrome.Header(title), summaryHTML, tableHTML)
}
