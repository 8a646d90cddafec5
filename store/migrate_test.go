package store

import (
	"testing"
	"time"

	"growth-tracker/model"
)

func TestMigrateFillsStructuralDefaults(t *testing.T) {
	var doc model.Document
	Migrate(&doc, "2026-03-02")

	if len(doc.Categories) != len(model.DefaultCategories) {
		t.Fatalf("expected default categories, got %v", doc.Categories)
	}
	for _, c := range doc.Categories {
		if doc.Outlines[c] == nil {
			t.Fatalf("expected outline forest for %q", c)
		}
	}
	if doc.Todos == nil || doc.TomorrowTodos == nil || doc.History == nil {
		t.Fatalf("expected slices initialized, got %+v", doc)
	}
	if doc.Stats.DailyResetTime != model.DefaultResetTime {
		t.Fatalf("expected default reset time, got %q", doc.Stats.DailyResetTime)
	}
}

func TestMigrateIsDeterministic(t *testing.T) {
	build := func() model.Document {
		return model.Document{
			Todos:         []model.Todo{{ID: "t1", Text: "a"}},
			TomorrowTodos: []model.Todo{{ID: "t2", Text: "b"}},
		}
	}

	first := build()
	Migrate(&first, "2026-03-02")
	second := build()
	Migrate(&second, "2026-03-02")

	if first.Todos[0] != second.Todos[0] || first.TomorrowTodos[0] != second.TomorrowTodos[0] {
		t.Fatalf("expected identical results for identical input\nfirst=%+v\nsecond=%+v", first, second)
	}
	// Running the pass again must change nothing.
	Migrate(&first, "2026-03-02")
	if first.Todos[0] != second.Todos[0] {
		t.Fatalf("expected second pass to be a no-op, got %+v", first.Todos[0])
	}
}

func TestMigrateTodoDateFallbackChain(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	completedAt := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)

	doc := model.Document{Todos: []model.Todo{
		{ID: "a", Text: "has createdAt", CreatedAt: createdAt},
		{ID: "b", Text: "only completedAt", Completed: true, CompletedAt: &completedAt},
		{ID: "c", Text: "nothing recorded"},
	}}
	Migrate(&doc, "2026-03-02")

	if got := doc.Todos[0].CreatedDate; got != "2025-06-01" {
		t.Fatalf("expected createdAt to win, got %q", got)
	}
	if got := doc.Todos[1].CreatedDate; got != "2025-06-03" {
		t.Fatalf("expected completedAt fallback, got %q", got)
	}
	if got := doc.Todos[2].CreatedDate; got != "2026-03-02" {
		t.Fatalf("expected load-day fallback, got %q", got)
	}
	for _, todo := range doc.Todos {
		if todo.TargetDate != todo.CreatedDate {
			t.Fatalf("expected today-list target defaulted to creation day, got %+v", todo)
		}
	}
}

func TestMigrateTomorrowTargetDefaultsToNextDay(t *testing.T) {
	doc := model.Document{TomorrowTodos: []model.Todo{{ID: "a", Text: "plan"}}}
	Migrate(&doc, "2026-03-02")

	if got := doc.TomorrowTodos[0].TargetDate; got != "2026-03-03" {
		t.Fatalf("expected target day after load day, got %q", got)
	}
}

func TestMigrateBackfillsLateCompletionOverdue(t *testing.T) {
	doc := model.Document{Todos: []model.Todo{{
		ID:            "a",
		Text:          "finished late",
		Completed:     true,
		CreatedDate:   "2026-01-01",
		TargetDate:    "2026-01-01",
		CompletedDate: "2026-01-05",
	}}}
	Migrate(&doc, "2026-03-02")

	if !doc.Todos[0].IsOverdue {
		t.Fatalf("expected late completion marked overdue")
	}
}

func TestMigrateHistoryDatesFromTimestamp(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	doc := model.Document{History: []model.HistoryEntry{
		{Text: "with timestamp", Timestamp: ts},
		{Text: "without timestamp"},
	}}
	Migrate(&doc, "2026-03-02")

	if got := doc.History[0].CreatedDate; got != "2025-12-31" {
		t.Fatalf("expected created date from timestamp, got %q", got)
	}
	if got := doc.History[0].CompletedDate; got != "2025-12-31" {
		t.Fatalf("expected completed date from timestamp, got %q", got)
	}
	if got := doc.History[1].CreatedDate; got != "2026-03-02" {
		t.Fatalf("expected load-day fallback, got %q", got)
	}
}
