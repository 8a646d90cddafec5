package store

import (
	"strings"
	"time"

	"growth-tracker/model"
)

// Migrate backfills fields that older documents are missing. loadDay is the
// calendar day the document is being loaded on; derived dates fall back to it
// only when nothing better is recorded. The pass is deterministic: loading
// the same bytes on the same day always yields the same document.
func Migrate(doc *model.Document, loadDay string) {
	if len(doc.Categories) == 0 {
		doc.Categories = make([]string, len(model.DefaultCategories))
		copy(doc.Categories, model.DefaultCategories)
	}
	if doc.Outlines == nil {
		doc.Outlines = make(map[string][]*model.OutlineNode, len(doc.Categories))
	}
	for _, c := range doc.Categories {
		if doc.Outlines[c] == nil {
			doc.Outlines[c] = []*model.OutlineNode{}
		}
	}
	if doc.Todos == nil {
		doc.Todos = []model.Todo{}
	}
	if doc.TomorrowTodos == nil {
		doc.TomorrowTodos = []model.Todo{}
	}
	if doc.History == nil {
		doc.History = []model.HistoryEntry{}
	}
	if strings.TrimSpace(doc.Stats.DailyResetTime) == "" {
		doc.Stats.DailyResetTime = model.DefaultResetTime
	}

	loadTomorrow := nextDay(loadDay)

	for i := range doc.Todos {
		migrateTodo(&doc.Todos[i], loadDay, "")
		todo := &doc.Todos[i]
		// Completed-late detection for records written before overdue
		// tracking existed.
		if todo.Completed && todo.CompletedDate != "" && todo.TargetDate < todo.CompletedDate {
			todo.IsOverdue = true
		}
	}
	for i := range doc.TomorrowTodos {
		migrateTodo(&doc.TomorrowTodos[i], loadDay, loadTomorrow)
	}

	for i := range doc.History {
		h := &doc.History[i]
		if h.CreatedDate == "" {
			if !h.Timestamp.IsZero() {
				h.CreatedDate = model.DateOf(h.Timestamp)
			} else {
				h.CreatedDate = loadDay
			}
		}
		if h.CompletedDate == "" {
			if !h.Timestamp.IsZero() {
				h.CompletedDate = model.DateOf(h.Timestamp)
			} else {
				h.CompletedDate = loadDay
			}
		}
	}
}

// migrateTodo backfills the date fields of one item. defaultTarget overrides
// the created-day target default for tomorrow-list items.
func migrateTodo(todo *model.Todo, loadDay, defaultTarget string) {
	if todo.CreatedDate == "" {
		switch {
		case !todo.CreatedAt.IsZero():
			todo.CreatedDate = model.DateOf(todo.CreatedAt)
		case todo.CompletedAt != nil:
			todo.CreatedDate = model.DateOf(*todo.CompletedAt)
		default:
			todo.CreatedDate = loadDay
		}
	}
	if todo.TargetDate == "" {
		if defaultTarget != "" {
			todo.TargetDate = defaultTarget
		} else {
			todo.TargetDate = todo.CreatedDate
		}
	}
	if todo.CompletedDate == "" && todo.Completed && todo.CompletedAt != nil {
		todo.CompletedDate = model.DateOf(*todo.CompletedAt)
	}
}

func nextDay(day string) string {
	t, err := time.ParseInLocation(model.DateLayout, day, time.Local)
	if err != nil {
		return day
	}
	return model.DateOf(t.AddDate(0, 0, 1))
}
