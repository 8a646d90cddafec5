// Package tracker implements the daily rollover and to-do lifecycle engine.
// All operations are synchronous read-modify-write against a single document;
// callers persist the document after mutating calls.
package tracker

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"growth-tracker/model"
)

var (
	ErrInvalidName       = errors.New("name must not be empty")
	ErrInvalidText       = errors.New("text must not be empty")
	ErrInvalidURL        = errors.New("invalid link url")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrLastCategory      = errors.New("cannot remove the last category")
	ErrNothingToTransfer = errors.New("no tomorrow todos to transfer")
)

// Service holds the document and the domain rules.
// The clock and id generator are injectable so tests can fix "today"
// and produce deterministic ids.
type Service struct {
	doc   model.Document
	now   func() time.Time
	newID func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall-clock source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the unique-id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a service owning a normalized copy of doc.
func NewService(doc model.Document, opts ...Option) *Service {
	s := &Service{
		doc:   normalizeDocument(doc),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns a deep copy of the current document.
func (s *Service) Document() model.Document {
	return copyDocument(s.doc)
}

// Stats returns the current counters.
func (s *Service) Stats() model.Stats {
	return s.doc.Stats
}

// SetDailyResetTime stores the HH:MM day-boundary setting.
func (s *Service) SetDailyResetTime(hhmm string) error {
	if _, err := time.Parse("15:04", hhmm); err != nil {
		return err
	}
	s.doc.Stats.DailyResetTime = hhmm
	return nil
}

// Categories returns all category names as a copy.
func (s *Service) Categories() []string {
	out := make([]string, len(s.doc.Categories))
	copy(out, s.doc.Categories)
	return out
}

// AddCategory appends a new category with an empty outline forest.
func (s *Service) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	if s.hasCategory(name) {
		return ErrCategoryExists
	}
	s.doc.Categories = append(s.doc.Categories, name)
	s.doc.Outlines[name] = []*model.OutlineNode{}
	return nil
}

// RemoveCategory deletes a category and its outline forest. Todos and
// history entries keep their category label. At least one category must
// remain.
func (s *Service) RemoveCategory(name string) error {
	if len(s.doc.Categories) <= 1 {
		return ErrLastCategory
	}
	for i, c := range s.doc.Categories {
		if c == name {
			s.doc.Categories = append(s.doc.Categories[:i], s.doc.Categories[i+1:]...)
			delete(s.doc.Outlines, name)
			return nil
		}
	}
	return ErrCategoryNotFound
}

func (s *Service) hasCategory(name string) bool {
	for _, c := range s.doc.Categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s *Service) defaultCategory() string {
	if len(s.doc.Categories) > 0 {
		return s.doc.Categories[0]
	}
	return ""
}

func (s *Service) today() string {
	return model.DateOf(s.now())
}

func normalizeDocument(doc model.Document) model.Document {
	doc = copyDocument(doc)

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
	return doc
}

func copyDocument(doc model.Document) model.Document {
	out := doc

	out.Categories = make([]string, len(doc.Categories))
	copy(out.Categories, doc.Categories)

	out.Outlines = make(map[string][]*model.OutlineNode, len(doc.Outlines))
	for category, forest := range doc.Outlines {
		out.Outlines[category] = cloneForest(forest)
	}

	out.Todos = make([]model.Todo, len(doc.Todos))
	copy(out.Todos, doc.Todos)
	out.TomorrowTodos = make([]model.Todo, len(doc.TomorrowTodos))
	copy(out.TomorrowTodos, doc.TomorrowTodos)
	out.History = make([]model.HistoryEntry, len(doc.History))
	copy(out.History, doc.History)

	return out
}

func cloneForest(forest []*model.OutlineNode) []*model.OutlineNode {
	out := make([]*model.OutlineNode, 0, len(forest))
	for _, node := range forest {
		out = append(out, cloneNode(node))
	}
	return out
}

func cloneNode(node *model.OutlineNode) *model.OutlineNode {
	clone := *node
	clone.Children = cloneForest(node.Children)
	if node.Links != nil {
		clone.Links = make([]model.Link, len(node.Links))
		copy(clone.Links, node.Links)
	}
	return &clone
}
