package plugin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/drone/drone-xml-html/convert"
)

// Args represents the plugin's configurable arguments.
type Args struct {
	XMLFile         string `envconfig:"PLUGIN_XML_FILE"`
	Mode            string `envconfig:"PLUGIN_MODE" default:"report"`
	OutputType      string `envconfig:"PLUGIN_OUTPUT_TYPE" default:"file"`
	OutputFormat    string `envconfig:"PLUGIN_OUTPUT_FORMAT" default:"full"`
	OutputFilename  string `envconfig:"PLUGIN_OUTPUT_FILENAME"`
	OutputDir       string `envconfig:"PLUGIN_OUTPUT_DIR"`
	Title           string `envconfig:"PLUGIN_TITLE"`
	TableClass      string `envconfig:"PLUGIN_TABLE_CLASS"`
	IncludeStyles   bool   `envconfig:"PLUGIN_INCLUDE_STYLES" default:"true"`
	ShowSuiteInfo   bool   `envconfig:"PLUGIN_SHOW_SUITE_INFO" default:"true"`
	ShowTimestamps  bool   `envconfig:"PLUGIN_SHOW_TIMESTAMPS" default:"true"`
	ShowAttributes  bool   `envconfig:"PLUGIN_SHOW_ATTRIBUTES" default:"true"`
	ShowHierarchy   bool   `envconfig:"PLUGIN_SHOW_HIERARCHY" default:"true"`
	MaxTextLength   int    `envconfig:"PLUGIN_MAX_TEXT_LENGTH" default:"100"`
	FailIfNoResults bool   `envconfig:"PLUGIN_FAIL_IF_NO_RESULTS"`
	Level           string `envconfig:"PLUGIN_LOG_LEVEL"`
}

// MissingInputError reports an XML file pattern that matched nothing.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return "XML file not found: " + e.Path
}

// ValidateInputs ensures the user inputs meet the plugin requirements. All
// problems are reported together.
func ValidateInputs(args Args) error {
	var result *multierror.Error

	if args.XMLFile == "" {
		result = multierror.Append(result, errors.New("missing required parameter: XMLFile. Please specify the XML file to convert"))
	}
	if args.Mode != ModeReport && args.Mode != ModeGeneric {
		result = multierror.Append(result, fmt.Errorf("invalid Mode %q. It must be %q or %q", args.Mode, ModeReport, ModeGeneric))
	}
	if args.OutputType != OutputTypeFile && args.OutputType != OutputTypeCode {
		result = multierror.Append(result, fmt.Errorf("invalid OutputType %q. It must be %q or %q", args.OutputType, OutputTypeFile, OutputTypeCode))
	}
	switch args.OutputFormat {
	case FormatFull, FormatTable, FormatSummary, FormatCompact, FormatAll:
	default:
		result = multierror.Append(result, fmt.Errorf("invalid OutputFormat %q. It must be one of full, table, summary, compact or all", args.OutputFormat))
	}
	if args.MaxTextLength < 0 {
		result = multierror.Append(result, errors.New("MaxTextLength must be non-negative"))
	}
	if args.TableClass != "" && !convert.ValidTableClass(args.TableClass) {
		result = multierror.Append(result, fmt.Errorf("invalid TableClass %q. Use letters, digits, '-' and '_' only", args.TableClass))
	}

	return result.ErrorOrNil()
}

// Exec converts the configured XML file(s), writes the HTML output and
// exports the output variables to DRONE_OUTPUT.
func Exec(ctx context.Context, args Args) error {
	results, err := Run(ctx, args)
	if err != nil {
		return err
	}

	if path := os.Getenv("DRONE_OUTPUT"); path != "" {
		if err := godotenv.Write(results.Outputs, path); err != nil {
			logrus.WithError(err).WithField("File", path).Error("Failed to export outputs")
			return errors.Wrap(err, "failed to export outputs")
		}
	}
	for _, key := range sortedKeys(results.Outputs) {
		if strings.HasPrefix(key, OutputHTMLContent) {
			continue
		}
		logrus.Debugf("Output %s=%s", key, results.Outputs[key])
	}

	logrus.Infof("XML to HTML conversion completed successfully")
	return nil
}

// Run validates args, converts every matching file and produces the
// outputs. No file is written unless every input converted.
func Run(ctx context.Context, args Args) (Results, error) {
	if err := ValidateInputs(args); err != nil {
		return Results{}, err
	}

	files, err := locateFiles(args.XMLFile)
	if err != nil {
		return Results{}, err
	}
	if args.OutputType == OutputTypeCode && len(files) > 1 {
		return Results{}, fmt.Errorf("output type %q supports a single XML file, %d files matched %q", OutputTypeCode, len(files), args.XMLFile)
	}

	var conv conversion
	switch args.Mode {
	case ModeGeneric:
		conv, err = convertFiles(ctx, elementsPipeline, files, args)
	default:
		conv, err = convertFiles(ctx, reportPipeline, files, args)
	}
	if err != nil {
		return Results{}, err
	}

	if conv.records == 0 {
		if args.FailIfNoResults {
			return Results{}, errors.New("no records were extracted from the XML file(s). Check the input or the Mode setting")
		}
		logrus.Warn("No records were extracted, continuing as FailIfNoResults is false")
	}

	results := Results{Outputs: conv.outputs}
	if args.OutputType == OutputTypeCode {
		setContentOutputs(results.Outputs, conv.documents[0])
		return results, nil
	}

	results.Files, err = writeDocuments(conv.documents, args, conv.fullSuffix)
	if err != nil {
		return Results{}, err
	}
	results.Outputs[OutputHTMLFilePath] = strings.Join(results.Files, ",")
	return results, nil
}

// locateFiles identifies files matching the given path or doublestar pattern.
// An existing file is taken literally, even if its name contains glob
// metacharacters.
func locateFiles(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && info.Mode().IsRegular() {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		logger := logrus.WithError(err).WithField("Pattern", pattern)
		logger.Error("Error occurred while searching for files")
		return nil, errors.Wrap(err, "failed to search for files")
	}
	if len(matches) == 0 {
		return nil, &MissingInputError{Path: pattern}
	}
	sort.Strings(matches)
	return matches, nil
}

// setContentOutputs returns the HTML inline instead of writing files.
func setContentOutputs(outputs map[string]string, doc Document) {
	outputs[OutputHTMLContent] = doc.Variants[0].HTML
	if len(doc.Variants) > 1 {
		for _, v := range doc.Variants {
			outputs[OutputHTMLContent+"_"+strings.ToUpper(v.Format)] = v.HTML
		}
	}
}

// writeDocuments writes every variant as <base>-<suffix>.html. Targets are
// computed and checked for collisions before anything is written.
func writeDocuments(docs []Document, args Args, fullSuffix string) ([]string, error) {
	type target struct {
		path string
		html string
	}
	var targets []target
	seen := make(map[string]string)

	for _, doc := range docs {
		base := outputBase(doc.File, args.OutputFilename, len(docs) > 1)
		for _, v := range doc.Variants {
			suffix := v.Format
			if suffix == FormatFull {
				suffix = fullSuffix
			}
			path := filepath.Join(args.OutputDir, base+"-"+suffix+".html")
			if other, ok := seen[path]; ok {
				return nil, fmt.Errorf("output file %s would be written for both %s and %s. Set distinct file names", path, other, doc.File)
			}
			seen[path] = doc.File
			targets = append(targets, target{path: path, html: v.HTML})
		}
	}

	if args.OutputDir != "" {
		if err := os.MkdirAll(args.OutputDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create output directory")
		}
	}

	var (
		written []string
		result  *multierror.Error
	)
	for _, t := range targets {
		if err := writeFileAtomic(t.path, []byte(t.html)); err != nil {
			logrus.WithError(err).WithField("File", t.path).Error("Failed to write HTML file")
			result = multierror.Append(result, errors.Wrapf(err, "failed to write %s", t.path))
			continue
		}
		logrus.Infof("Generated HTML file: %s", t.path)
		written = append(written, t.path)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return written, nil
}

func outputBase(file, override string, multiple bool) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	switch {
	case override == "":
		return base
	case multiple:
		return override + "-" + base
	default:
		return override
	}
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so a failed write never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
