package plugin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/drone/drone-xml-html/xmltree"
)

// LogEntry captures a single log entry.
type LogEntry struct {
	Level   logrus.Level
	Message string
	Fields  logrus.Fields
}

// MockLogHook is a hook to capture log entries.
type MockLogHook struct {
	Entries []LogEntry
}

// Fire is called for each log entry.
func (hook *MockLogHook) Fire(entry *logrus.Entry) error {
	hook.Entries = append(hook.Entries, LogEntry{
		Level:   entry.Level,
		Message: entry.Message,
		Fields:  entry.Data,
	})
	return nil
}

// Levels returns the log levels supported by the hook.
func (hook *MockLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// NewMockLogHook creates a new instance of MockLogHook and installs it on
// the standard logger for the duration of the test.
func NewMockLogHook(t *testing.T) *MockLogHook {
	hook := &MockLogHook{}
	logrus.AddHook(hook)
	t.Cleanup(func() {
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})
	return hook
}

// validArgs returns the defaults the plugin receives from envconfig.
func validArgs(pattern, outputDir string) Args {
	return Args{
		XMLFile:        pattern,
		Mode:           ModeReport,
		OutputType:     OutputTypeFile,
		OutputFormat:   FormatFull,
		OutputDir:      outputDir,
		IncludeStyles:  true,
		ShowSuiteInfo:  true,
		ShowTimestamps: true,
		ShowAttributes: true,
		ShowHierarchy:  true,
		MaxTextLength:  100,
	}
}

func TestLocateFiles(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		expected []string
		err      string
	}{
		{
			name:     "SingleFile",
			pattern:  "../testdata/catalog.xml",
			expected: []string{filepath.FromSlash("../testdata/catalog.xml")},
		},
		{
			name:     "ValidPatternWithFiles",
			pattern:  "../testdata/junit-*.xml",
			expected: []string{filepath.FromSlash("../testdata/junit-errors.xml"), filepath.FromSlash("../testdata/junit-report.xml")},
		},
		{
			name:     "DoubleStarPattern",
			pattern:  "../testdata/**/junit-report.xml",
			expected: []string{filepath.FromSlash("../testdata/junit-report.xml")},
		},
		{
			name:    "MissingFile",
			pattern: "../testdata/nonexistent.xml",
			err:     "XML file not found: ../testdata/nonexistent.xml",
		},
		{
			name:    "InvalidPattern",
			pattern: "../testdata/[invalid",
			err:     "failed to search for files",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := locateFiles(tc.pattern)

			if diff := cmp.Diff(tc.expected, result); diff != "" {
				t.Errorf("locateFiles() mismatch (-want +got):\n%s", diff)
			}

			if tc.err != "" {
				if err == nil || !strings.Contains(err.Error(), tc.err) {
					t.Errorf("locateFiles() expected error %v, got %v", tc.err, err)
				}
			} else if err != nil {
				t.Errorf("locateFiles() unexpected error: %v", err)
			}
		})
	}
}

func TestLocateFilesLiteralName(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "report[1].xml")
	if err := os.WriteFile(name, []byte("<testsuites/>"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	result, err := locateFiles(name)
	if err != nil {
		t.Fatalf("locateFiles() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{name}, result); diff != "" {
		t.Errorf("locateFiles() mismatch (-want +got):\n%s", diff)
	}

	// a directory is never taken as an input file
	if _, err := locateFiles(dir); err == nil {
		t.Errorf("locateFiles() expected an error for a directory")
	}
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Args)
		expectErr bool
		errMsgs   []string
	}{
		{
			name:   "ValidInputs",
			mutate: func(*Args) {},
		},
		{
			name:   "GenericAllCode",
			mutate: func(a *Args) { a.Mode, a.OutputFormat, a.OutputType = ModeGeneric, FormatAll, OutputTypeCode },
		},
		{
			name:      "MissingXMLFile",
			mutate:    func(a *Args) { a.XMLFile = "" },
			expectErr: true,
			errMsgs:   []string{"missing required parameter"},
		},
		{
			name: "EveryProblemReported",
			mutate: func(a *Args) {
				a.Mode = "xslt"
				a.OutputType = "email"
				a.OutputFormat = "pdf"
				a.MaxTextLength = -1
				a.TableClass = "bad class{}"
			},
			expectErr: true,
			errMsgs: []string{
				`invalid Mode "xslt"`,
				`invalid OutputType "email"`,
				`invalid OutputFormat "pdf"`,
				"MaxTextLength must be non-negative",
				`invalid TableClass "bad class{}"`,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := validArgs("report.xml", "")
			tc.mutate(&args)
			err := ValidateInputs(args)

			if tc.expectErr {
				if err == nil {
					t.Fatalf("ValidateInputs() expected error")
				}
				for _, msg := range tc.errMsgs {
					if !strings.Contains(err.Error(), msg) {
						t.Errorf("ValidateInputs() error %q does not mention %q", err, msg)
					}
				}
			} else if err != nil {
				t.Errorf("ValidateInputs() unexpected error: %v", err)
			}
		})
	}
}

func TestRunReportFull(t *testing.T) {
	dir := t.TempDir()
	args := validArgs("../testdata/junit-report.xml", dir)

	results, err := Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	expectedFile := filepath.Join(dir, "junit-report-full.html")
	if diff := cmp.Diff([]string{expectedFile}, results.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}

	expected := map[string]string{
		"TOTAL_TESTS":      "3",
		"PASSED_TESTS":     "2",
		"FAILED_TESTS":     "1",
		"ERROR_TESTS":      "0",
		"SKIPPED_TESTS":    "0",
		"TOTAL_SUITES":     "1",
		"TOTAL_TIME":       "1.24",
		"SUITE_NAMES":      "SampleSuite",
		OutputHTMLFilePath: expectedFile,
	}
	got := results.Outputs
	delete(got, "SUMMARY")
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Outputs mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(expectedFile)
	if err != nil {
		t.Fatalf("failed to read generated file: %v", err)
	}
	page := string(data)
	for _, s := range []string{
		"<!DOCTYPE html>",
		"<title>Test Results Report - junit-report.xml</title>",
		`<div class="test-summary">`,
		`<td class="status status-failed">Failed</td>`,
	} {
		if !strings.Contains(page, s) {
			t.Errorf("expected generated page to contain %q", s)
		}
	}
}

func TestRunAllFormats(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		pattern  string
		expected []string
	}{
		{
			name:     "Report",
			mode:     ModeReport,
			pattern:  "../testdata/junit-report.xml",
			expected: []string{"out-compact.html", "out-full.html", "out-summary.html", "out-table.html"},
		},
		{
			name:     "Generic",
			mode:     ModeGeneric,
			pattern:  "../testdata/catalog.xml",
			expected: []string{"out-compact.html", "out-report.html", "out-summary.html", "out-table.html"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			args := validArgs(tc.pattern, dir)
			args.Mode = tc.mode
			args.OutputFormat = FormatAll
			args.OutputFilename = "out"

			results, err := Run(context.Background(), args)
			if err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatalf("ReadDir() failed: %v", err)
			}
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			sort.Strings(names)
			if diff := cmp.Diff(tc.expected, names); diff != "" {
				t.Errorf("generated files mismatch (-want +got):\n%s", diff)
			}
			if n := len(strings.Split(results.Outputs[OutputHTMLFilePath], ",")); n != 4 {
				t.Errorf("expected 4 paths in %s, got %d", OutputHTMLFilePath, n)
			}

			compact, err := os.ReadFile(filepath.Join(dir, "out-compact.html"))
			if err != nil {
				t.Fatalf("failed to read compact file: %v", err)
			}
			for _, header := range []string{"<th>Suite Name</th>", "<th>Parent</th>", "<th>Attributes</th>"} {
				if strings.Contains(string(compact), header) {
					t.Errorf("compact table contains %q", header)
				}
			}
		})
	}
}

func TestRunGenericCode(t *testing.T) {
	args := validArgs("../testdata/catalog.xml", "")
	args.Mode = ModeGeneric
	args.OutputType = OutputTypeCode
	args.OutputFormat = FormatTable

	results, err := Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if len(results.Files) != 0 {
		t.Errorf("code output must not write files, wrote %v", results.Files)
	}

	outputs := results.Outputs
	for key, want := range map[string]string{
		"TOTAL_ELEMENTS":           "6",
		"UNIQUE_ELEMENTS":          "6",
		"ELEMENTS_WITH_ATTRIBUTES": "3",
		"ELEMENTS_WITH_CONTENT":    "5",
		"MAX_DEPTH":                "3",
		"TOTAL_ATTRIBUTES":         "4",
		"ELEMENT_TYPES":            "catalog,wrapper,book,title,price,flag",
	} {
		if outputs[key] != want {
			t.Errorf("output %s = %q, want %q", key, outputs[key], want)
		}
	}
	if !strings.HasPrefix(outputs[OutputHTMLContent], "<style>") || !strings.Contains(outputs[OutputHTMLContent], `<table class="xml-data-table">`) {
		t.Errorf("unexpected %s: %.80s", OutputHTMLContent, outputs[OutputHTMLContent])
	}
	if _, ok := outputs[OutputHTMLFilePath]; ok {
		t.Errorf("code output must not set %s", OutputHTMLFilePath)
	}
}

func TestRunCodeAllFormats(t *testing.T) {
	args := validArgs("../testdata/junit-report.xml", "")
	args.OutputType = OutputTypeCode
	args.OutputFormat = FormatAll

	results, err := Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	for _, key := range []string{"HTML_CONTENT", "HTML_CONTENT_FULL", "HTML_CONTENT_TABLE", "HTML_CONTENT_SUMMARY", "HTML_CONTENT_COMPACT"} {
		if results.Outputs[key] == "" {
			t.Errorf("expected output %s", key)
		}
	}
	if results.Outputs["HTML_CONTENT"] != results.Outputs["HTML_CONTENT_FULL"] {
		t.Errorf("HTML_CONTENT should hold the full page")
	}
}

func TestRunMultipleFilesAggregates(t *testing.T) {
	dir := t.TempDir()
	args := validArgs("../testdata/junit-*.xml", dir)
	args.OutputFormat = FormatSummary

	results, err := Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	expected := map[string]string{
		"TOTAL_TESTS":   "5",
		"PASSED_TESTS":  "2",
		"FAILED_TESTS":  "1",
		"ERROR_TESTS":   "2",
		"TOTAL_SUITES":  "2",
		"TOTAL_TIME":    "4.74",
		"SUITE_NAMES":   "IntegrationSuite,SampleSuite",
		"SKIPPED_TESTS": "0",
	}
	for key, want := range expected {
		if got := results.Outputs[key]; got != want {
			t.Errorf("output %s = %q, want %q", key, got, want)
		}
	}

	expectedFiles := []string{
		filepath.Join(dir, "junit-errors-summary.html"),
		filepath.Join(dir, "junit-report-summary.html"),
	}
	if diff := cmp.Diff(expectedFiles, results.Files); diff != "" {
		t.Errorf("Files mismatch (-want +got):\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Args)
		errMsg  string
		errType any
	}{
		{
			name:    "MissingInput",
			mutate:  func(a *Args) { a.XMLFile = "../testdata/nonexistent.xml" },
			errMsg:  "XML file not found",
			errType: new(*MissingInputError),
		},
		{
			name:    "ParseError",
			mutate:  func(a *Args) { a.XMLFile = "../testdata/invalid.xml" },
			errMsg:  "XML parsing error",
			errType: new(*xmltree.ParseError),
		},
		{
			name: "ParseErrorAmongValidFiles",
			mutate: func(a *Args) {
				a.XMLFile = "../testdata/*.xml"
				a.Mode = ModeGeneric
			},
			errMsg:  "failed to process file",
			errType: new(*xmltree.ParseError),
		},
		{
			name: "NoResults",
			mutate: func(a *Args) {
				a.XMLFile = "../testdata/no-tests.xml"
				a.FailIfNoResults = true
			},
			errMsg: "no records were extracted",
		},
		{
			name: "CodeWithSeveralFiles",
			mutate: func(a *Args) {
				a.XMLFile = "../testdata/junit-*.xml"
				a.OutputType = OutputTypeCode
			},
			errMsg: "supports a single XML file",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			args := validArgs("", dir)
			tc.mutate(&args)

			_, err := Run(context.Background(), args)
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Fatalf("Run() expected error %q, got %v", tc.errMsg, err)
			}
			switch target := tc.errType.(type) {
			case **MissingInputError:
				if !errors.As(err, target) {
					t.Errorf("expected *MissingInputError, got %T", err)
				}
			case **xmltree.ParseError:
				if !errors.As(err, target) {
					t.Errorf("expected *xmltree.ParseError, got %T", err)
				}
			}

			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("expected no output files after a failure, found %d", len(entries))
			}
		})
	}
}

func TestRunNoResultsWarns(t *testing.T) {
	hook := NewMockLogHook(t)
	args := validArgs("../testdata/no-tests.xml", t.TempDir())

	results, err := Run(context.Background(), args)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if results.Outputs["TOTAL_TESTS"] != "0" {
		t.Errorf("TOTAL_TESTS = %q, want 0", results.Outputs["TOTAL_TESTS"])
	}

	found := false
	for _, entry := range hook.Entries {
		if entry.Level == logrus.WarnLevel && strings.Contains(entry.Message, "No records were extracted") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about missing records")
	}
}

func TestWriteDocumentsRejectsCollisions(t *testing.T) {
	dir := t.TempDir()
	docs := []Document{
		{File: "a/report.xml", Variants: []Variant{{Format: FormatTable, HTML: "<p>a</p>"}}},
		{File: "b/report.xml", Variants: []Variant{{Format: FormatTable, HTML: "<p>b</p>"}}},
	}
	args := validArgs("", dir)

	_, err := writeDocuments(docs, args, FormatFull)
	if err == nil || !strings.Contains(err.Error(), "would be written for both") {
		t.Fatalf("writeDocuments() expected collision error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected nothing written, found %d files", len(entries))
	}

	args.OutputFilename = "nightly"
	files, err := writeDocuments(docs[:1], args, FormatFull)
	if err != nil {
		t.Fatalf("writeDocuments() unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "nightly-table.html")}, files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		file, override string
		multiple       bool
		expected       string
	}{
		{"dir/results.xml", "", false, "results"},
		{"dir/results.junit.xml", "", false, "results.junit"},
		{"dir/results.xml", "custom", false, "custom"},
		{"dir/results.xml", "custom", true, "custom-results"},
	}
	for _, tc := range tests {
		if got := outputBase(tc.file, tc.override, tc.multiple); got != tc.expected {
			t.Errorf("outputBase(%q, %q, %v) = %q, want %q", tc.file, tc.override, tc.multiple, got, tc.expected)
		}
	}
}

func TestExecExportsOutputs(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "drone.env")
	t.Setenv("DRONE_OUTPUT", outputFile)

	args := validArgs("../testdata/junit-report.xml", t.TempDir())
	args.OutputFormat = FormatSummary
	if err := Exec(context.Background(), args); err != nil {
		t.Fatalf("Exec() unexpected error: %v", err)
	}

	exported, err := godotenv.Read(outputFile)
	if err != nil {
		t.Fatalf("failed to read exported outputs: %v", err)
	}
	for key, want := range map[string]string{
		"TOTAL_TESTS":  "3",
		"FAILED_TESTS": "1",
		"TOTAL_TIME":   "1.24",
		"SUITE_NAMES":  "SampleSuite",
	} {
		if exported[key] != want {
			t.Errorf("exported %s = %q, want %q", key, exported[key], want)
		}
	}
	if !strings.HasSuffix(exported[OutputHTMLFilePath], "junit-report-summary.html") {
		t.Errorf("exported %s = %q", OutputHTMLFilePath, exported[OutputHTMLFilePath])
	}
}
