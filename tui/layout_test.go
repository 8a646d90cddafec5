package tui

import (
	"testing"

	"growth-tracker/model"
	"growth-tracker/tracker"
)

func TestVisibleOutlineRowsRespectExpandedFlags(t *testing.T) {
	svc := tracker.NewService(model.NewDocument())
	root, err := svc.AddOutlineNode("root", "", false, "学习")
	if err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	child, err := svc.AddOutlineNode("child", root.ID, false, "学习")
	if err != nil {
		t.Fatalf("add child failed: %v", err)
	}
	if _, err := svc.AddOutlineNode("grandchild", child.ID, false, "学习"); err != nil {
		t.Fatalf("add grandchild failed: %v", err)
	}

	m := NewModel(svc, "")
	m.tab = tabOutline

	rows := m.visibleOutlineRows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 visible rows while expanded, got %d", len(rows))
	}
	if rows[1].depth != 1 || rows[2].depth != 2 {
		t.Fatalf("unexpected depths: %+v", rows)
	}

	if !svc.ToggleOutlineExpand(child.ID) {
		t.Fatalf("collapse failed")
	}
	rows = m.visibleOutlineRows()
	if len(rows) != 2 {
		t.Fatalf("expected grandchild hidden when parent collapsed, got %d rows", len(rows))
	}

	if !svc.ToggleOutlineExpand(root.ID) {
		t.Fatalf("collapse failed")
	}
	if rows = m.visibleOutlineRows(); len(rows) != 1 {
		t.Fatalf("expected only the root visible, got %d rows", len(rows))
	}
}

func TestEnsureSelectionClampsCursors(t *testing.T) {
	svc := tracker.NewService(model.NewDocument())
	if _, err := svc.AddTodo("only one", "学习", ""); err != nil {
		t.Fatalf("add todo failed: %v", err)
	}

	m := NewModel(svc, "")
	m.catCursor = 99
	m.itemCursor = 99
	m.ensureSelection()

	if m.catCursor != len(svc.Categories())-1 {
		t.Fatalf("expected category cursor clamped, got %d", m.catCursor)
	}
	if m.itemCursor != 0 {
		t.Fatalf("expected item cursor clamped, got %d", m.itemCursor)
	}
}

func TestActiveCategoryFollowsCursor(t *testing.T) {
	svc := tracker.NewService(model.NewDocument())
	m := NewModel(svc, "")

	if got := m.activeCategory(); got != svc.Categories()[0] {
		t.Fatalf("expected first category, got %q", got)
	}
	m.catCursor = 1
	if got := m.activeCategory(); got != svc.Categories()[1] {
		t.Fatalf("expected second category, got %q", got)
	}
	m.catCursor = -5
	if got := m.activeCategory(); got != svc.Categories()[0] {
		t.Fatalf("expected out-of-range cursor reset to first category, got %q", got)
	}
}
