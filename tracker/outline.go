package tracker

import (
	"net/url"
	"strings"

	"growth-tracker/model"
)

// OutlineNodes returns a deep copy of a category's outline forest.
func (s *Service) OutlineNodes(category string) []*model.OutlineNode {
	return cloneForest(s.doc.Outlines[category])
}

// AddOutlineNode appends a node to the category's forest, or as a child of
// parentID when the parent exists in that category. Child level is always
// parent level + 1; roots are level 1. With syncToTodo a linked today-todo is
// created referencing the new node.
func (s *Service) AddOutlineNode(text, parentID string, syncToTodo bool, category string) (model.OutlineNode, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.OutlineNode{}, ErrInvalidText
	}
	if strings.TrimSpace(category) == "" {
		category = s.defaultCategory()
	}
	if s.doc.Outlines[category] == nil {
		s.doc.Outlines[category] = []*model.OutlineNode{}
	}

	node := &model.OutlineNode{
		ID:       s.newID(),
		Text:     text,
		Level:    1,
		Expanded: true,
		Children: []*model.OutlineNode{},
	}

	if parentID != "" {
		if parent := findInForest(s.doc.Outlines[category], parentID); parent != nil {
			node.ParentID = parent.ID
			node.Level = parent.Level + 1
			parent.Children = append(parent.Children, node)
		} else {
			s.doc.Outlines[category] = append(s.doc.Outlines[category], node)
		}
	} else {
		s.doc.Outlines[category] = append(s.doc.Outlines[category], node)
	}

	if syncToTodo {
		if _, err := s.AddTodo(text, category, node.ID); err != nil {
			return model.OutlineNode{}, err
		}
	}
	return *cloneNode(node), nil
}

// RemoveOutlineNode splices a node and its whole subtree out of the given
// category's forest. Todos referencing removed nodes keep their dangling
// reference and degrade to "no project link" at resolve time.
func (s *Service) RemoveOutlineNode(category, id string) bool {
	forest, ok := spliceNode(s.doc.Outlines[category], id)
	if !ok {
		return false
	}
	s.doc.Outlines[category] = forest
	return true
}

// ToggleOutlineExpand flips the presentation flag on a node anywhere in the
// document.
func (s *Service) ToggleOutlineExpand(id string) bool {
	node, _ := s.findNode(id)
	if node == nil {
		return false
	}
	node.Expanded = !node.Expanded
	return true
}

// FindOutlineNode resolves a node id across all categories' forests.
// Used to resolve weak outlineItem references from todos.
func (s *Service) FindOutlineNode(id string) (model.OutlineNode, string, bool) {
	node, category := s.findNode(id)
	if node == nil {
		return model.OutlineNode{}, "", false
	}
	return *cloneNode(node), category, true
}

// OutlineText resolves a todo's linked outline text, or "" when the link is
// absent or dangling.
func (s *Service) OutlineText(todo model.Todo) string {
	if todo.OutlineItem == "" {
		return ""
	}
	node, _, ok := s.FindOutlineNode(todo.OutlineItem)
	if !ok {
		return ""
	}
	return node.Text
}

// AddOutlineLink attaches a bookmark to a node. The url must parse as an
// absolute URL; otherwise the node is left unchanged.
func (s *Service) AddOutlineLink(id, rawURL, title string) (bool, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !validLinkURL(rawURL) {
		return false, ErrInvalidURL
	}
	node, _ := s.findNode(id)
	if node == nil {
		return false, nil
	}
	node.Links = append(node.Links, model.Link{URL: rawURL, Title: strings.TrimSpace(title)})
	return true, nil
}

// UpdateOutlineLink replaces the link at index on a node.
func (s *Service) UpdateOutlineLink(id string, index int, rawURL, title string) (bool, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !validLinkURL(rawURL) {
		return false, ErrInvalidURL
	}
	node, _ := s.findNode(id)
	if node == nil || index < 0 || index >= len(node.Links) {
		return false, nil
	}
	node.Links[index] = model.Link{URL: rawURL, Title: strings.TrimSpace(title)}
	return true, nil
}

// RemoveOutlineLink drops the link at index from a node.
func (s *Service) RemoveOutlineLink(id string, index int) bool {
	node, _ := s.findNode(id)
	if node == nil || index < 0 || index >= len(node.Links) {
		return false
	}
	node.Links = append(node.Links[:index], node.Links[index+1:]...)
	return true
}

func validLinkURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	return err == nil && u.Scheme != ""
}

// findNode looks the id up across every category's forest and returns the
// live node plus its category.
func (s *Service) findNode(id string) (*model.OutlineNode, string) {
	for _, category := range s.doc.Categories {
		if node := findInForest(s.doc.Outlines[category], id); node != nil {
			return node, category
		}
	}
	return nil, ""
}

func findInForest(forest []*model.OutlineNode, id string) *model.OutlineNode {
	for _, node := range forest {
		if node.ID == id {
			return node
		}
		if found := findInForest(node.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// spliceNode removes the node with the given id from the forest, recursing
// into children. The second result reports whether anything was removed.
func spliceNode(forest []*model.OutlineNode, id string) ([]*model.OutlineNode, bool) {
	for i, node := range forest {
		if node.ID == id {
			return append(forest[:i], forest[i+1:]...), true
		}
		if children, ok := spliceNode(node.Children, id); ok {
			node.Children = children
			return forest, true
		}
	}
	return forest, false
}
