// Package export renders read-only projections of the tracker document:
// a JSON dump and a flattened text report. No new semantics live here.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"growth-tracker/model"
)

// Range is a date-range preset attached to an export.
type Range string

const (
	RangeToday     Range = "today"
	RangeYesterday Range = "yesterday"
	RangeThisWeek  Range = "thisweek"
	RangeAll       Range = "all"
)

// Payload is the export envelope: the full document plus export metadata.
// The range annotates the payload; it does not filter the document.
type Payload struct {
	model.Document
	ExportDate      time.Time `json:"exportDate"`
	ExportDateRange Range     `json:"exportDateRange"`
	RangeStart      string    `json:"rangeStart,omitempty"`
	RangeEnd        string    `json:"rangeEnd,omitempty"`
}

// NewPayload builds the export envelope for the given document and range,
// resolving the preset to concrete start/end days relative to now.
func NewPayload(doc model.Document, r Range, now time.Time) Payload {
	p := Payload{
		Document:        doc,
		ExportDate:      now,
		ExportDateRange: r,
	}
	today := model.DateOf(now)
	switch r {
	case RangeToday:
		p.RangeStart, p.RangeEnd = today, today
	case RangeYesterday:
		yesterday := model.DateOf(now.AddDate(0, 0, -1))
		p.RangeStart, p.RangeEnd = yesterday, yesterday
	case RangeThisWeek:
		weekStart := now.AddDate(0, 0, -int(now.Weekday()))
		p.RangeStart, p.RangeEnd = model.DateOf(weekStart), today
	}
	return p
}

// JSON renders the payload as indented JSON.
func JSON(p Payload) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Text renders the payload as a flat human-readable report.
func Text(p Payload) string {
	var b strings.Builder

	b.WriteString("Growth Tracker export\n")
	fmt.Fprintf(&b, "Exported: %s\n\n", p.ExportDate.Format("2006-01-02 15:04"))

	b.WriteString("=== Stats ===\n")
	fmt.Fprintf(&b, "Streak days: %d\n", p.Stats.StreakDays)
	fmt.Fprintf(&b, "Completed today: %d\n", p.Stats.TodayCompleted)
	fmt.Fprintf(&b, "Completed total: %d\n\n", p.Stats.TotalCompleted)

	b.WriteString("=== Categories ===\n")
	for _, c := range p.Categories {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\n")

	b.WriteString("=== Outlines ===\n")
	for _, category := range p.Categories {
		fmt.Fprintf(&b, "\n[%s]\n", category)
		writeOutline(&b, p.Outlines[category], 0)
	}

	b.WriteString("\n=== Today ===\n")
	writeTodos(&b, p.Todos)

	b.WriteString("\n=== Tomorrow ===\n")
	writeTodos(&b, p.TomorrowTodos)

	b.WriteString("\n=== History ===\n")
	for _, h := range p.History {
		fmt.Fprintf(&b, "[%s] %s\n", h.Timestamp.Format("2006-01-02 15:04"), h.Text)
	}

	return b.String()
}

func writeOutline(b *strings.Builder, nodes []*model.OutlineNode, depth int) {
	for _, node := range nodes {
		fmt.Fprintf(b, "%s- %s\n", strings.Repeat("  ", depth), node.Text)
		writeOutline(b, node.Children, depth+1)
	}
}

func writeTodos(b *strings.Builder, todos []model.Todo) {
	for _, t := range todos {
		status := "○"
		if t.Completed {
			status = "✓"
		}
		fmt.Fprintf(b, "%s [%s] %s (%s)\n", status, t.Category, t.Text, t.CreatedDate)
	}
}
