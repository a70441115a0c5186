package convert

import (
	"fmt"
	"strconv"
)

// DefaultTableClass implements Strategy.
func (t *TestReport) DefaultTableClass() string { return "test-results-table" }

// EmptyTable implements Strategy.
func (t *TestReport) EmptyTable() string {
	return "<p>No test data available. Please load an XML file first.</p>"
}

// EmptySummary implements Strategy.
func (t *TestReport) EmptySummary() string {
	return "<p>No test data available for summary.</p>"
}

// Columns implements Strategy. Suite columns follow ShowSuiteInfo and
// timestamp columns follow ShowTimestamps.
func (t *TestReport) Columns(opts TableOptions) []Column[TestRecord] {
	var cols []Column[TestRecord]
	if opts.ShowSuiteInfo {
		cols = append(cols,
			Column[TestRecord]{Header: "Suite Name", Value: func(r TestRecord) string { return r.SuiteName }},
			Column[TestRecord]{Header: "Suite Tests", Value: func(r TestRecord) string { return r.SuiteTests }},
			Column[TestRecord]{Header: "Suite Failures", Value: func(r TestRecord) string { return r.SuiteFailures }},
			Column[TestRecord]{Header: "Suite Time (s)", Value: func(r TestRecord) string { return r.SuiteTime }, Safe: true},
		)
		if opts.ShowTimestamps {
			cols = append(cols, Column[TestRecord]{Header: "Suite Timestamp", Value: func(r TestRecord) string { return r.SuiteTimestamp }})
		}
	}
	cols = append(cols,
		Column[TestRecord]{
			Header: "Test Name",
			Value:  func(r TestRecord) string { return r.TestName },
			Class:  func(TestRecord) string { return "test-name" },
		},
		Column[TestRecord]{
			Header: "Status",
			Value:  func(r TestRecord) string { return string(r.Status) },
			Class:  func(r TestRecord) string { return "status " + r.Status.CSSClass() },
			Safe:   true,
		},
		Column[TestRecord]{Header: "Test Time (s)", Value: func(r TestRecord) string { return r.TestTime }, Safe: true},
	)
	if opts.ShowTimestamps {
		cols = append(cols, Column[TestRecord]{Header: "Test Timestamp", Value: func(r TestRecord) string { return r.TestTimestamp }})
	}
	return cols
}

// TableStyles implements Strategy.
func (t *TestReport) TableStyles(c string) string {
	return fmt.Sprintf(`
<style>
.%[1]s {
    width: 100%%;
    border-collapse: collapse;
    font-family: Arial, sans-serif;
    margin: 20px 0;
    box-shadow: 0 2px 5px rgba(0,0,0,0.1);
}

.%[1]s th,
.%[1]s td {
    padding: 12px;
    text-align: left;
    border: 1px solid #ddd;
}

.%[1]s th {
    background-color: #f4f4f4;
    font-weight: bold;
    color: #333;
}

.%[1]s tr:nth-child(even) {
    background-color: #f9f9f9;
}

.%[1]s tr:hover {
    background-color: #f5f5f5;
}

.%[1]s .test-name {
    font-weight: 500;
    max-width: 300px;
    word-wrap: break-word;
}

.%[1]s .status {
    font-weight: bold;
    padding: 4px 8px;
    border-radius: 4px;
    text-align: center;
}

.%[1]s .status-passed {
    background-color: #d4edda;
    color: #155724;
}

.%[1]s .status-failed {
    background-color: #f8d7da;
    color: #721c24;
}

.%[1]s .status-error {
    background-color: #fff3cd;
    color: #856404;
}

.%[1]s .status-skipped {
    background-color: #e2e3e5;
    color: #6c757d;
}
</style>
`, c)
}

// SummaryHTML implements Strategy.
func (t *TestReport) SummaryHTML(s TestSummary) string {
	cards := []struct {
		label, value, class string
	}{
		{"Total Tests:", strconv.Itoa(s.TotalTests), ""},
		{"Passed:", strconv.Itoa(s.Passed), "passed"},
		{"Failed:", strconv.Itoa(s.Failed), "failed"},
		{"Errors:", strconv.Itoa(s.Errors), "error"},
		{"Skipped:", strconv.Itoa(s.Skipped), "skipped"},
		{"Total Suites:", strconv.Itoa(s.TotalSuites), ""},
		{"Total Time:", s.FormattedTime() + "s", ""},
	}

	var items string
	for _, c := range cards {
		class := "summary-value"
		if c.class != "" {
			class += " " + c.class
		}
		items += fmt.Sprintf(`
        <div class="summary-item">
            <span class="summary-label">%s</span>
            <span class="%s">%s</span>
        </div>`, c.label, class, c.value)
	}

	return `
<div class="test-summary">
    <h2>Test Results Summary</h2>
    <div class="summary-grid">` + items + `
    </div>
</div>
` + testSummaryStyles
}

const testSummaryStyles = `
<style>
.test-summary {
    background-color: #f8f9fa;
    padding: 20px;
    border-radius: 8px;
    margin: 20px 0;
    border: 1px solid #dee2e6;
}

.test-summary h2 {
    margin-top: 0;
    color: #333;
}

.summary-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 15px;
}

.summary-item {
    display: flex;
    justify-content: space-between;
    padding: 10px;
    background-color: white;
    border-radius: 4px;
    border: 1px solid #e9ecef;
}

.summary-label {
    font-weight: 500;
    color: #6c757d;
}

.summary-value {
    font-weight: bold;
    color: #495057;
}

.summary-value.passed {
    color: #28a745;
}

.summary-value.failed {
    color: #dc3545;
}

.summary-value.error {
    color: #ffc107;
}

.summary-value.skipped {
    color: #6c757d;
}
</style>
`

// Chrome implements Strategy.
func (t *TestReport) Chrome() Chrome {
	return Chrome{
		DefaultTitle: "Test Results Report",
		Styles: `
        body {
            font-family: Arial, sans-serif;
            line-height: 1.6;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background-color: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        h1 {
            color: #333;
            text-align: center;
            margin-bottom: 30px;
        }
    `,
		Header: func(title string) string {
			return "<h1>" + title + "</h1>"
		},
	}
}
