package plugin

// Conversion modes.
const (
	ModeReport  = "report"
	ModeGeneric = "generic"
)

// Output types.
const (
	OutputTypeFile = "file"
	OutputTypeCode = "code"
)

// Output formats.
const (
	FormatFull    = "full"
	FormatTable   = "table"
	FormatSummary = "summary"
	FormatCompact = "compact"
	FormatAll     = "all"
)

// allFormats is the expansion of FormatAll, in output order.
var allFormats = []string{FormatFull, FormatTable, FormatSummary, FormatCompact}

// Output variable names shared by both modes.
const (
	OutputHTMLFilePath = "HTML_FILE_PATH"
	OutputHTMLContent  = "HTML_CONTENT"
)

// Variant is one rendered HTML document.
type Variant struct {
	Format string
	HTML   string
}

// Document is the converted form of a single input file.
type Document struct {
	File     string
	Variants []Variant
}

// Results is what Exec produced: the named output values and the files it
// wrote, if any.
type Results struct {
	Outputs map[string]string
	Files   []string
}
