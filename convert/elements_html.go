package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTableClass implements Strategy.
func (e *Elements) DefaultTableClass() string { return "xml-data-table" }

// EmptyTable implements Strategy.
func (e *Elements) EmptyTable() string {
	return "<p>No XML data available. Please load an XML file first.</p>"
}

// EmptySummary implements Strategy.
func (e *Elements) EmptySummary() string {
	return "<p>No XML data available for summary.</p>"
}

// Columns implements Strategy.
func (e *Elements) Columns(opts TableOptions) []Column[ElementRecord] {
	cols := []Column[ElementRecord]{{
		Header: "Element",
		Value:  func(r ElementRecord) string { return r.Tag },
		Class:  func(ElementRecord) string { return "element-name" },
	}}
	if opts.ShowHierarchy {
		cols = append(cols,
			Column[ElementRecord]{
				Header: "Parent",
				Value:  func(r ElementRecord) string { return r.ParentTag },
				Class:  func(ElementRecord) string { return "parent-element" },
			},
			Column[ElementRecord]{
				Header: "Level",
				Value:  func(r ElementRecord) string { return strconv.Itoa(r.Depth) },
				Class:  func(r ElementRecord) string { return "level-" + strconv.Itoa(r.Depth) },
				Safe:   true,
			},
		)
	}
	limit := opts.MaxTextLength
	cols = append(cols, Column[ElementRecord]{
		Header: "Content",
		Value:  func(r ElementRecord) string { return Truncate(r.Text, limit) },
		Class:  func(ElementRecord) string { return "content" },
	})
	if opts.ShowAttributes {
		cols = append(cols, Column[ElementRecord]{
			Header: "Attributes",
			Value:  formatAttributes,
			Class:  func(ElementRecord) string { return "attributes" },
		})
	}
	cols = append(cols, Column[ElementRecord]{
		Header: "Children",
		Value:  func(r ElementRecord) string { return strconv.Itoa(r.ChildCount) },
		Class:  func(ElementRecord) string { return "child-count" },
		Safe:   true,
	})
	return cols
}

// formatAttributes renders name="value" pairs in document order.
func formatAttributes(r ElementRecord) string {
	pairs := make([]string, len(r.Attributes))
	for i, a := range r.Attributes {
		pairs[i] = fmt.Sprintf(`%s="%s"`, a.Name, a.Value)
	}
	return strings.Join(pairs, ", ")
}

// TableStyles implements Strategy.
func (e *Elements) TableStyles(c string) string {
	return fmt.Sprintf(`<style>
.%[1]s {
    width: 100%%;
    border-collapse: collapse;
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    margin: 20px 0;
    box-shadow: 0 4px 6px rgba(0,0,0,0.1);
    border-radius: 8px;
    overflow: hidden;
}
.%[1]s th,
.%[1]s td {
    padding: 12px 15px;
    text-align: left;
    border-bottom: 1px solid #e0e0e0;
}
.%[1]s th {
    background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%);
    color: white;
    font-weight: 600;
    text-transform: uppercase;
    font-size: 12px;
    letter-spacing: 0.5px;
}
.%[1]s tr:nth-child(even) {
    background-color: #f8f9ff;
}
.%[1]s tr:hover {
    background-color: #e3f2fd;
    transition: all 0.2s ease;
}
.%[1]s .element-name {
    font-weight: 600;
    color: #2c3e50;
    background-color: #ecf0f1;
    border-radius: 4px;
    padding: 8px 12px;
    font-family: 'Courier New', monospace;
}
.%[1]s .parent-element {
    color: #7f8c8d;
    font-style: italic;
    font-size: 0.9em;
}
.%[1]s .level-0 { color: #e74c3c; font-weight: bold; }
.%[1]s .level-1 { color: #f39c12; font-weight: bold; }
.%[1]s .level-2 { color: #f1c40f; font-weight: bold; }
.%[1]s .level-3 { color: #27ae60; font-weight: bold; }
.%[1]s .level-4 { color: #3498db; font-weight: bold; }
.%[1]s .level-5 { color: #9b59b6; font-weight: bold; }
.%[1]s .content {
    max-width: 300px;
    word-wrap: break-word;
    font-family: 'Courier New', monospace;
    font-size: 0.9em;
    background-color: #f8f9fa;
    padding: 8px;
    border-radius: 4px;
}
.%[1]s .attributes {
    font-family: 'Courier New', monospace;
    font-size: 0.85em;
    color: #6c757d;
    background-color: #fff3cd;
    padding: 8px;
    border-radius: 4px;
    max-width: 250px;
    word-wrap: break-word;
}
.%[1]s .child-count {
    text-align: center;
    font-weight: bold;
    color: #495057;
    background-color: #e9ecef;
    border-radius: 50%%;
    width: 30px;
    height: 30px;
    line-height: 30px;
}
</style>`, c)
}

// SummaryHTML implements Strategy. Besides the metric cards it renders one
// badge per distinct tag, in the order first seen.
func (e *Elements) SummaryHTML(s ElementSummary) string {
	cards := []struct {
		icon, value, label string
	}{
		{"📋", strconv.Itoa(s.TotalElements), "Total Elements"},
		{"🔖", strconv.Itoa(s.UniqueElements), "Unique Tags"},
		{"⚙️", strconv.Itoa(s.ElementsWithAttributes), "With Attributes"},
		{"📝", strconv.Itoa(s.ElementsWithContent), "With Content"},
		{"📊", strconv.Itoa(s.MaxDepth), "Max Depth"},
		{"🏷️", strconv.Itoa(s.TotalAttributes), "Total Attributes"},
	}

	var sb strings.Builder
	sb.WriteString(`
<div class="xml-summary">
    <h2>📊 XML Structure Summary</h2>
    <div class="summary-grid">`)
	for _, c := range cards {
		fmt.Fprintf(&sb, `
        <div class="summary-card">
            <div class="summary-icon">%s</div>
            <div class="summary-content">
                <span class="summary-value">%s</span>
                <span class="summary-label">%s</span>
            </div>
        </div>`, c.icon, c.value, c.label)
	}
	sb.WriteString(`
    </div>
    <div class="element-types">
        <h3>Element Types Found:</h3>
        <div class="element-tags">
            `)
	for _, tag := range s.ElementTypes {
		fmt.Fprintf(&sb, `<span class="element-tag">%s</span>`, Escape(tag))
	}
	sb.WriteString(`
        </div>
    </div>
</div>
`)
	sb.WriteString(elementSummaryStyles)
	return sb.String()
}

const elementSummaryStyles = `
<style>
.xml-summary {
    background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%);
    padding: 25px;
    border-radius: 12px;
    margin: 20px 0;
    border: 1px solid #e1e8ed;
    box-shadow: 0 4px 6px rgba(0, 0, 0, 0.05);
}
.xml-summary h2 {
    margin-top: 0;
    color: #2c3e50;
    text-align: center;
    font-size: 1.8em;
    margin-bottom: 25px;
}
.summary-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 20px;
    margin-bottom: 25px;
}
.summary-card {
    display: flex;
    align-items: center;
    padding: 20px;
    background: white;
    border-radius: 8px;
    box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
    transition: transform 0.2s ease;
}
.summary-card:hover {
    transform: translateY(-2px);
    box-shadow: 0 4px 8px rgba(0, 0, 0, 0.15);
}
.summary-icon { font-size: 2em; margin-right: 15px; }
.summary-content { display: flex; flex-direction: column; }
.summary-value { font-size: 1.8em; font-weight: bold; color: #2c3e50; line-height: 1; }
.summary-label { font-size: 0.9em; color: #7f8c8d; margin-top: 5px; }
.element-types { background: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1); }
.element-types h3 { margin-top: 0; color: #34495e; margin-bottom: 15px; }
.element-tags { display: flex; flex-wrap: wrap; gap: 8px; }
.element-tag {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    color: white;
    padding: 6px 12px;
    border-radius: 20px;
    font-size: 0.85em;
    font-weight: 500;
    font-family: 'Courier New', monospace;
}
</style>
`

// Chrome implements Strategy. The header carries the generation time.
func (e *Elements) Chrome() Chrome {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	loc := e.Location
	if loc == nil {
		loc = time.Local
	}

	return Chrome{
		DefaultTitle: "XML Data Report",
		Styles: `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%);
            min-height: 100vh;
            padding: 20px;
        }
        .container {
            max-width: 1400px;
            margin: 0 auto;
            background: white;
            border-radius: 12px;
            box-shadow: 0 10px 30px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }
        .header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 30px;
            text-align: center;
        }
        .header h1 { font-size: 2.5em; margin-bottom: 10px; font-weight: 300; }
        .header p { font-size: 1.1em; opacity: 0.9; }
        .content { padding: 30px; }
    `,
		Header: func(title string) string {
			generated := now().In(loc)
			return fmt.Sprintf(`<div class="header">
            <h1>%s</h1>
            <p>Generated on %s at %s</p>
        </div>`, title, generated.Format("1/2/2006"), generated.Format("3:04:05 PM"))
		},
	}
}
