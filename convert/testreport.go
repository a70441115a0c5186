package convert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/drone/drone-xml-html/xmltree"
)

// Status is the outcome of a single test case.
type Status string

const (
	StatusPassed  Status = "Passed"
	StatusFailed  Status = "Failed"
	StatusError   Status = "Error"
	StatusSkipped Status = "Skipped"
)

// CSSClass returns the status cell class, e.g. "status-failed".
func (s Status) CSSClass() string {
	return "status-" + strings.ToLower(string(s))
}

// TestRecord is one <testcase> together with the attributes of its suite.
type TestRecord struct {
	SuiteName      string
	SuiteTests     string
	SuiteFailures  string
	SuiteSkipped   string
	SuiteTime      string
	SuiteTimestamp string

	TestName      string
	TestTime      string
	TestDuration  float64
	TestTimestamp string

	Status         Status
	FailureMessage string
	ErrorMessage   string
}

// TestReport extracts JUnit-style testsuite/testcase documents.
type TestReport struct {
	// Location is the time zone timestamps are displayed in.
	Location *time.Location
}

// Extract returns one record per testcase, suites in document order and
// testcases in document order within their suite.
func (t *TestReport) Extract(root xmltree.Node) []TestRecord {
	var records []TestRecord
	xmltree.Walk(root, func(n xmltree.Node) {
		if n.Tag() == "testsuite" {
			records = append(records, t.extractSuite(n)...)
		}
	})
	return records
}

func (t *TestReport) extractSuite(suite xmltree.Node) []TestRecord {
	suiteName := xmltree.AttrValue(suite, "name")
	suiteDuration, ok := parseDuration(xmltree.AttrValue(suite, "time"))
	if !ok {
		logrus.WithField("Suite", suiteName).Warnf("Invalid or missing time for suite '%s', using 0", suiteName)
	}
	suiteTimestamp := t.formatTimestamp(xmltree.AttrValue(suite, "timestamp"))

	var records []TestRecord
	for _, tc := range xmltree.ChildrenByTag(suite, "testcase") {
		testName := xmltree.AttrValue(tc, "name")
		duration, ok := parseDuration(xmltree.AttrValue(tc, "time"))
		if !ok {
			logrus.WithField("Suite", suiteName).Warnf("Invalid or missing time for test '%s', using 0", testName)
		}

		rec := TestRecord{
			SuiteName:      suiteName,
			SuiteTests:     xmltree.AttrValue(suite, "tests"),
			SuiteFailures:  xmltree.AttrValue(suite, "failures"),
			SuiteSkipped:   xmltree.AttrValue(suite, "skipped"),
			SuiteTime:      formatSeconds(suiteDuration),
			SuiteTimestamp: suiteTimestamp,
			TestName:       testName,
			TestTime:       formatSeconds(duration),
			TestDuration:   duration,
			TestTimestamp:  t.formatTimestamp(xmltree.AttrValue(tc, "timestamp")),
			Status:         StatusPassed,
		}

		// The error check runs second and wins over a failure; the failure
		// message is kept.
		if failure := xmltree.FirstChild(tc, "failure"); failure != nil {
			rec.Status = StatusFailed
			rec.FailureMessage = failure.Text()
		}
		if e := xmltree.FirstChild(tc, "error"); e != nil {
			rec.Status = StatusError
			rec.ErrorMessage = e.Text()
		}

		records = append(records, rec)
	}
	return records
}

// Summarize counts statuses, distinct suites and the cumulative test time.
// The time adds up the per-test values as displayed, two decimals each.
func (t *TestReport) Summarize(records []TestRecord) TestSummary {
	var s TestSummary
	seen := make(map[string]bool)
	for _, rec := range records {
		s.TotalTests++
		s.TotalTime += displayedSeconds(rec.TestDuration)
		if !seen[rec.SuiteName] {
			seen[rec.SuiteName] = true
			s.Suites = append(s.Suites, rec.SuiteName)
		}
		switch rec.Status {
		case StatusPassed:
			s.Passed++
		case StatusFailed:
			s.Failed++
		case StatusError:
			s.Errors++
		case StatusSkipped:
			s.Skipped++
		}
	}
	s.TotalSuites = len(s.Suites)
	return s
}

// parseDuration reads a seconds attribute. Missing, non-numeric and
// non-finite values report false and count as zero.
func parseDuration(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func formatSeconds(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// displayedSeconds is v rounded the way formatSeconds renders it.
func displayedSeconds(v float64) float64 {
	rounded, err := strconv.ParseFloat(formatSeconds(v), 64)
	if err != nil {
		return 0
	}
	return rounded
}

// timestampLayouts are tried in order. Layouts without a zone are read in
// the display location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// localeLayout mirrors the common en-US date/time rendering.
const localeLayout = "1/2/2006, 3:04:05 PM"

// formatTimestamp renders raw for display. Empty input gives "" and input
// that matches no layout is returned unchanged.
func (t *TestReport) formatTimestamp(raw string) string {
	if raw == "" {
		return ""
	}
	loc := t.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return ts.In(loc).Format(localeLayout)
		}
	}
	return raw
}
