package tracker

import (
	"errors"
	"testing"
)

func TestAddOutlineNodeLevels(t *testing.T) {
	svc := newTestService(newTestClock())

	root, err := svc.AddOutlineNode("Go 项目", "", false, "学习")
	if err != nil {
		t.Fatalf("add root failed: %v", err)
	}
	if root.Level != 1 || root.ParentID != "" || !root.Expanded {
		t.Fatalf("unexpected root node: %+v", root)
	}

	child, err := svc.AddOutlineNode("写解析器", root.ID, false, "学习")
	if err != nil {
		t.Fatalf("add child failed: %v", err)
	}
	if child.Level != 2 || child.ParentID != root.ID {
		t.Fatalf("unexpected child node: %+v", child)
	}

	forest := svc.OutlineNodes("学习")
	if len(forest) != 1 || len(forest[0].Children) != 1 || forest[0].Children[0].ID != child.ID {
		t.Fatalf("expected child attached under root, got %+v", forest)
	}

	if _, err := svc.AddOutlineNode("   ", "", false, "学习"); !errors.Is(err, ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestAddOutlineNodeMissingParentFallsBackToRoot(t *testing.T) {
	svc := newTestService(newTestClock())

	node, err := svc.AddOutlineNode("孤儿节点", "no-such-parent", false, "学习")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if node.Level != 1 || node.ParentID != "" {
		t.Fatalf("expected root placement for missing parent, got %+v", node)
	}
	if forest := svc.OutlineNodes("学习"); len(forest) != 1 {
		t.Fatalf("expected node in root forest, got %d roots", len(forest))
	}
}

func TestAddOutlineNodeSyncCreatesLinkedTodo(t *testing.T) {
	svc := newTestService(newTestClock())

	node, err := svc.AddOutlineNode("Go 项目", "", true, "学习")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	todos := svc.Todos("学习")
	if len(todos) != 1 {
		t.Fatalf("expected one synced todo, got %d", len(todos))
	}
	if todos[0].OutlineItem != node.ID || todos[0].Text != node.Text {
		t.Fatalf("expected todo linked to outline node, got %+v", todos[0])
	}
	if got := svc.OutlineText(todos[0]); got != "Go 项目" {
		t.Fatalf("expected outline text resolved, got %q", got)
	}
}

func TestRemoveOutlineNodeCascadesSubtree(t *testing.T) {
	svc := newTestService(newTestClock())
	root, _ := svc.AddOutlineNode("root", "", false, "学习")
	child, _ := svc.AddOutlineNode("child", root.ID, false, "学习")
	grandchild, _ := svc.AddOutlineNode("grandchild", child.ID, false, "学习")

	if !svc.RemoveOutlineNode("学习", child.ID) {
		t.Fatalf("remove failed")
	}
	if _, _, ok := svc.FindOutlineNode(child.ID); ok {
		t.Fatalf("expected removed node to be gone")
	}
	if _, _, ok := svc.FindOutlineNode(grandchild.ID); ok {
		t.Fatalf("expected subtree removed with its root")
	}
	if _, _, ok := svc.FindOutlineNode(root.ID); !ok {
		t.Fatalf("expected sibling root to survive")
	}
	if svc.RemoveOutlineNode("学习", child.ID) {
		t.Fatalf("expected second removal to report not found")
	}
}

func TestRemovedOutlineLeavesDanglingTodoReference(t *testing.T) {
	svc := newTestService(newTestClock())
	node, _ := svc.AddOutlineNode("Go 项目", "", true, "学习")

	if !svc.RemoveOutlineNode("学习", node.ID) {
		t.Fatalf("remove failed")
	}
	todos := svc.Todos("学习")
	if len(todos) != 1 || todos[0].OutlineItem != node.ID {
		t.Fatalf("expected todo to keep its reference, got %+v", todos)
	}
	if got := svc.OutlineText(todos[0]); got != "" {
		t.Fatalf("expected dangling reference to resolve to empty text, got %q", got)
	}
}

func TestToggleOutlineExpand(t *testing.T) {
	svc := newTestService(newTestClock())
	node, _ := svc.AddOutlineNode("root", "", false, "健康")

	if !svc.ToggleOutlineExpand(node.ID) {
		t.Fatalf("toggle failed")
	}
	got, category, ok := svc.FindOutlineNode(node.ID)
	if !ok || got.Expanded || category != "健康" {
		t.Fatalf("expected collapsed node in 健康, got ok=%v category=%q %+v", ok, category, got)
	}
	if svc.ToggleOutlineExpand("missing") {
		t.Fatalf("expected unknown id to report not found")
	}
}

func TestOutlineLinksLifecycle(t *testing.T) {
	svc := newTestService(newTestClock())
	node, _ := svc.AddOutlineNode("root", "", false, "学习")

	if _, err := svc.AddOutlineLink(node.ID, "not a url", ""); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
	if ok, err := svc.AddOutlineLink(node.ID, "https://go.dev/doc", "Go docs"); err != nil || !ok {
		t.Fatalf("add link failed: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.AddOutlineLink("missing", "https://go.dev", ""); err != nil || ok {
		t.Fatalf("expected unknown node to report not found, got ok=%v err=%v", ok, err)
	}

	if ok, err := svc.UpdateOutlineLink(node.ID, 0, "https://go.dev/tour", "Tour"); err != nil || !ok {
		t.Fatalf("update link failed: ok=%v err=%v", ok, err)
	}
	got, _, _ := svc.FindOutlineNode(node.ID)
	if len(got.Links) != 1 || got.Links[0].URL != "https://go.dev/tour" || got.Links[0].Title != "Tour" {
		t.Fatalf("unexpected links after update: %+v", got.Links)
	}

	if ok, err := svc.UpdateOutlineLink(node.ID, 5, "https://go.dev", ""); err != nil || ok {
		t.Fatalf("expected out-of-range update to report not found, got ok=%v err=%v", ok, err)
	}
	if svc.RemoveOutlineLink(node.ID, 5) {
		t.Fatalf("expected out-of-range removal to report not found")
	}
	if !svc.RemoveOutlineLink(node.ID, 0) {
		t.Fatalf("remove link failed")
	}
	got, _, _ = svc.FindOutlineNode(node.ID)
	if len(got.Links) != 0 {
		t.Fatalf("expected no links left, got %+v", got.Links)
	}
}
