package tracker

import (
	"fmt"
	"testing"

	"growth-tracker/model"
)

func TestHistoryFiltersGroupByCreationDay(t *testing.T) {
	clock := newTestClock()
	svc := newTestService(clock)
	svc.CheckDailyReset()

	old := mustAddTodo(t, svc, "yesterday's work", "")
	mustToggle(t, svc, old.ID)

	clock.advanceDays(1)
	svc.CheckDailyReset()
	fresh := mustAddTodo(t, svc, "today's work", "")
	mustToggle(t, svc, fresh.ID)

	today := svc.History(model.HistoryToday)
	if len(today) != 1 || today[0].TodoID != fresh.ID {
		t.Fatalf("expected only today's entry, got %+v", today)
	}
	yesterday := svc.History(model.HistoryYesterday)
	if len(yesterday) != 1 || yesterday[0].TodoID != old.ID {
		t.Fatalf("expected only yesterday's entry, got %+v", yesterday)
	}
	if got := len(svc.History(model.HistoryAll)); got != 2 {
		t.Fatalf("expected 2 entries in all, got %d", got)
	}
}

func TestHistoryAttributedToCreationDayNotCompletionDay(t *testing.T) {
	clock := newTestClock()
	svc := newTestService(clock)
	svc.CheckDailyReset()
	todo := mustAddTodo(t, svc, "late", "")

	clock.advanceDays(1)
	svc.CheckDailyReset()
	mustToggle(t, svc, todo.ID)

	if got := svc.History(model.HistoryToday); len(got) != 0 {
		t.Fatalf("expected entry grouped under creation day, got %+v under today", got)
	}
	got := svc.History(model.HistoryYesterday)
	if len(got) != 1 || got[0].CompletedDate != model.DateOf(clock.now) {
		t.Fatalf("expected yesterday-created entry completed today, got %+v", got)
	}
}

func TestUndoRemovesMatchingIDLinkedEntryOnly(t *testing.T) {
	svc := newTestService(newTestClock())
	a := mustAddTodo(t, svc, "same text", "学习")
	b := mustAddTodo(t, svc, "same text", "学习")
	mustToggle(t, svc, a.ID)
	mustToggle(t, svc, b.ID)

	mustToggle(t, svc, a.ID)

	history := svc.History(model.HistoryAll)
	if len(history) != 1 || history[0].TodoID != b.ID {
		t.Fatalf("expected only the other item's entry to survive, got %+v", history)
	}
}

func TestAddToHistoryCapAt100(t *testing.T) {
	svc := newTestService(newTestClock())
	for i := 0; i < 105; i++ {
		svc.AddToHistory(fmt.Sprintf("entry %d", i), model.EntryTodo)
	}
	history := svc.History(model.HistoryAll)
	if len(history) != historyCap {
		t.Fatalf("expected history capped at %d, got %d", historyCap, len(history))
	}
	// Newest first; the oldest entries fall off the end.
	if history[0].Text != "entry 104" {
		t.Fatalf("expected newest entry first, got %q", history[0].Text)
	}
}

func TestClearHistoryKeepsCounters(t *testing.T) {
	svc := newTestService(newTestClock())
	todo := mustAddTodo(t, svc, "A", "")
	mustToggle(t, svc, todo.ID)

	svc.ClearHistory()

	if got := len(svc.History(model.HistoryAll)); got != 0 {
		t.Fatalf("expected empty history, got %d entries", got)
	}
	st := svc.Stats()
	if st.TotalCompleted != 1 || st.StreakDays != 1 {
		t.Fatalf("expected counters untouched by clear, got %+v", st)
	}
}
