package convert

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TestSummary aggregates the records of a test report.
type TestSummary struct {
	TotalTests int `json:"totalTests"`
	Passed     int `json:"passed"`
	Failed     int `json:"failed"`
	Errors     int `json:"errors"`
	Skipped    int `json:"skipped"`
	// Suites lists distinct suite names in the order first seen.
	Suites      []string `json:"suites"`
	TotalSuites int      `json:"totalSuites"`
	// TotalTime is the sum of the test durations in seconds.
	TotalTime float64 `json:"-"`
}

// FormattedTime returns TotalTime with two decimals.
func (s TestSummary) FormattedTime() string {
	return fmt.Sprintf("%.2f", s.TotalTime)
}

// Merge combines the summaries of two documents.
func (s TestSummary) Merge(o TestSummary) TestSummary {
	out := TestSummary{
		TotalTests: s.TotalTests + o.TotalTests,
		Passed:     s.Passed + o.Passed,
		Failed:     s.Failed + o.Failed,
		Errors:     s.Errors + o.Errors,
		Skipped:    s.Skipped + o.Skipped,
		Suites:     union(s.Suites, o.Suites),
		TotalTime:  s.TotalTime + o.TotalTime,
	}
	out.TotalSuites = len(out.Suites)
	return out
}

// MarshalJSON renders TotalTime as fixed two-decimal text.
func (s TestSummary) MarshalJSON() ([]byte, error) {
	type plain TestSummary
	return json.Marshal(struct {
		plain
		TotalTime string `json:"totalTime"`
	}{plain(s), s.FormattedTime()})
}

// Outputs returns the named output values of the summary.
func (s TestSummary) Outputs() map[string]string {
	return map[string]string{
		"TOTAL_TESTS":   strconv.Itoa(s.TotalTests),
		"PASSED_TESTS":  strconv.Itoa(s.Passed),
		"FAILED_TESTS":  strconv.Itoa(s.Failed),
		"ERROR_TESTS":   strconv.Itoa(s.Errors),
		"SKIPPED_TESTS": strconv.Itoa(s.Skipped),
		"TOTAL_SUITES":  strconv.Itoa(s.TotalSuites),
		"TOTAL_TIME":    s.FormattedTime(),
		"SUITE_NAMES":   strings.Join(s.Suites, ","),
		"SUMMARY":       marshalSummary(s),
	}
}

// ElementSummary aggregates the records of a generic document.
type ElementSummary struct {
	TotalElements          int `json:"totalElements"`
	UniqueElements         int `json:"uniqueElements"`
	ElementsWithAttributes int `json:"elementsWithAttributes"`
	ElementsWithContent    int `json:"elementsWithContent"`
	MaxDepth               int `json:"maxLevel"`
	TotalAttributes        int `json:"totalAttributes"`
	// ElementTypes lists distinct tag names in the order first seen.
	ElementTypes []string `json:"elementTypes"`
}

// Merge combines the summaries of two documents.
func (s ElementSummary) Merge(o ElementSummary) ElementSummary {
	out := ElementSummary{
		TotalElements:          s.TotalElements + o.TotalElements,
		ElementsWithAttributes: s.ElementsWithAttributes + o.ElementsWithAttributes,
		ElementsWithContent:    s.ElementsWithContent + o.ElementsWithContent,
		MaxDepth:               max(s.MaxDepth, o.MaxDepth),
		TotalAttributes:        s.TotalAttributes + o.TotalAttributes,
		ElementTypes:           union(s.ElementTypes, o.ElementTypes),
	}
	out.UniqueElements = len(out.ElementTypes)
	return out
}

// Outputs returns the named output values of the summary.
func (s ElementSummary) Outputs() map[string]string {
	return map[string]string{
		"TOTAL_ELEMENTS":           strconv.Itoa(s.TotalElements),
		"UNIQUE_ELEMENTS":          strconv.Itoa(s.UniqueElements),
		"ELEMENTS_WITH_ATTRIBUTES": strconv.Itoa(s.ElementsWithAttributes),
		"ELEMENTS_WITH_CONTENT":    strconv.Itoa(s.ElementsWithContent),
		"MAX_DEPTH":                strconv.Itoa(s.MaxDepth),
		"TOTAL_ATTRIBUTES":         strconv.Itoa(s.TotalAttributes),
		"ELEMENT_TYPES":            strings.Join(s.ElementTypes, ","),
		"SUMMARY":                  marshalSummary(s),
	}
}

func marshalSummary(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// union appends the values of b missing from a, keeping first-seen order.
func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}
