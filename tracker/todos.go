package tracker

import (
	"strings"
	"time"

	"growth-tracker/model"
)

// Todos returns today-list items, optionally filtered by category.
func (s *Service) Todos(category string) []model.Todo {
	return filterByCategory(s.doc.Todos, category)
}

// TomorrowTodos returns tomorrow-list items, optionally filtered by category.
func (s *Service) TomorrowTodos(category string) []model.Todo {
	return filterByCategory(s.doc.TomorrowTodos, category)
}

func filterByCategory(todos []model.Todo, category string) []model.Todo {
	if strings.TrimSpace(category) == "" {
		out := make([]model.Todo, len(todos))
		copy(out, todos)
		return out
	}
	out := make([]model.Todo, 0)
	for _, t := range todos {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// AddTodo creates a today-list item with target date = today.
func (s *Service) AddTodo(text, category, outlineID string) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, ErrInvalidText
	}
	if strings.TrimSpace(category) == "" {
		category = s.defaultCategory()
	}

	now := s.now()
	today := model.DateOf(now)
	todo := model.Todo{
		ID:          s.newID(),
		Text:        text,
		Category:    category,
		CreatedAt:   now,
		CreatedDate: today,
		TargetDate:  today,
		OutlineItem: outlineID,
	}
	s.doc.Todos = append(s.doc.Todos, todo)
	return todo, nil
}

// AddTomorrowTodo creates a tomorrow-list item with target date = tomorrow.
// Locked items survive transfers as recurring templates.
func (s *Service) AddTomorrowTodo(text, category, outlineID string, locked bool) (model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Todo{}, ErrInvalidText
	}
	if strings.TrimSpace(category) == "" {
		category = s.defaultCategory()
	}

	now := s.now()
	todo := model.Todo{
		ID:          s.newID(),
		Text:        text,
		Category:    category,
		CreatedAt:   now,
		CreatedDate: model.DateOf(now),
		TargetDate:  model.DateOf(now.AddDate(0, 0, 1)),
		OutlineItem: outlineID,
		IsLocked:    locked,
	}
	s.doc.TomorrowTodos = append(s.doc.TomorrowTodos, todo)
	return todo, nil
}

// ToggleTodoComplete flips completion on a today-list item.
// Returns false when the id is unknown.
func (s *Service) ToggleTodoComplete(id string) (model.Todo, bool) {
	return s.toggleComplete(s.doc.Todos, id, model.EntryTodo)
}

// ToggleTomorrowComplete flips completion on a tomorrow-list item.
func (s *Service) ToggleTomorrowComplete(id string) (model.Todo, bool) {
	return s.toggleComplete(s.doc.TomorrowTodos, id, model.EntryTomorrow)
}

func (s *Service) toggleComplete(todos []model.Todo, id string, typ model.EntryType) (model.Todo, bool) {
	for i := range todos {
		if todos[i].ID != id {
			continue
		}
		todo := &todos[i]
		now := s.now()
		today := model.DateOf(now)

		todo.Completed = !todo.Completed
		if todo.Completed {
			ts := now
			todo.CompletedAt = &ts
			todo.CompletedDate = today
			// Completing late still marks the item overdue.
			if todo.TargetDate < today {
				todo.IsOverdue = true
			}
			s.recordCompletion(*todo, typ, now)
		} else {
			todo.CompletedAt = nil
			todo.CompletedDate = ""
			s.undoCompletion(*todo, typ)
		}
		return *todo, true
	}
	return model.Todo{}, false
}

// recordCompletion bumps counters and appends the history entry. History is
// attributed by creation day, not completion day. The first completion of the
// day extends the streak.
func (s *Service) recordCompletion(todo model.Todo, typ model.EntryType, now time.Time) {
	if s.doc.Stats.TodayCompleted == 0 {
		s.doc.Stats.StreakDays++
	}
	s.doc.Stats.TodayCompleted++
	s.doc.Stats.TotalCompleted++

	s.doc.History = append(s.doc.History, model.HistoryEntry{
		TodoID:        todo.ID,
		Text:          todo.Text,
		Category:      todo.Category,
		Type:          typ,
		Timestamp:     now,
		CreatedDate:   todo.CreatedDate,
		CompletedDate: todo.CompletedDate,
		IsOverdue:     todo.IsOverdue,
		OutlineRef:    todo.OutlineItem,
	})
}

// undoCompletion reverses counters and drops the matching history entry.
// Entries are matched by todo id; entries migrated from older documents have
// no id and fall back to text+category+type matching.
func (s *Service) undoCompletion(todo model.Todo, typ model.EntryType) {
	s.doc.Stats.TodayCompleted--
	s.doc.Stats.TotalCompleted--
	if s.doc.Stats.TodayCompleted == 0 && s.doc.Stats.StreakDays > 0 {
		s.doc.Stats.StreakDays--
	}

	kept := make([]model.HistoryEntry, 0, len(s.doc.History))
	for _, h := range s.doc.History {
		if h.TodoID != "" {
			if h.TodoID == todo.ID {
				continue
			}
		} else if h.Text == todo.Text && h.Category == todo.Category && h.Type == typ {
			continue
		}
		kept = append(kept, h)
	}
	s.doc.History = kept
}

// RemoveTodo deletes a today-list item. Removing a completed item rolls the
// counters back (floored at zero) but keeps its history entry.
func (s *Service) RemoveTodo(id string) bool {
	for i := range s.doc.Todos {
		if s.doc.Todos[i].ID != id {
			continue
		}
		if s.doc.Todos[i].Completed {
			s.floorDecrementCounters()
		}
		s.doc.Todos = append(s.doc.Todos[:i], s.doc.Todos[i+1:]...)
		return true
	}
	return false
}

// RemoveTomorrowTodo deletes a tomorrow-list item, mirroring RemoveTodo.
func (s *Service) RemoveTomorrowTodo(id string) bool {
	for i := range s.doc.TomorrowTodos {
		if s.doc.TomorrowTodos[i].ID != id {
			continue
		}
		if s.doc.TomorrowTodos[i].Completed {
			s.floorDecrementCounters()
		}
		s.doc.TomorrowTodos = append(s.doc.TomorrowTodos[:i], s.doc.TomorrowTodos[i+1:]...)
		return true
	}
	return false
}

func (s *Service) floorDecrementCounters() {
	if s.doc.Stats.TodayCompleted > 0 {
		s.doc.Stats.TodayCompleted--
	}
	if s.doc.Stats.TotalCompleted > 0 {
		s.doc.Stats.TotalCompleted--
	}
}

// TransferAllToToday copies every tomorrow-list item into the today list and
// consumes the tomorrow list. Locked items are retained as templates with
// completion reset. Returns the number of items copied.
func (s *Service) TransferAllToToday() (int, error) {
	if len(s.doc.TomorrowTodos) == 0 {
		return 0, ErrNothingToTransfer
	}

	for _, todo := range s.doc.TomorrowTodos {
		s.doc.Todos = append(s.doc.Todos, s.transferCopy(todo))
	}

	transferred := len(s.doc.TomorrowTodos)
	kept := make([]model.Todo, 0)
	for _, todo := range s.doc.TomorrowTodos {
		if !todo.IsLocked {
			continue
		}
		todo.Completed = false
		todo.CompletedAt = nil
		todo.CompletedDate = ""
		kept = append(kept, todo)
	}
	s.doc.TomorrowTodos = kept
	return transferred, nil
}

// TransferSingleToToday moves one tomorrow-list item into today, with the
// same locked-item semantics as TransferAllToToday.
func (s *Service) TransferSingleToToday(id string) bool {
	for i := range s.doc.TomorrowTodos {
		if s.doc.TomorrowTodos[i].ID != id {
			continue
		}
		todo := s.doc.TomorrowTodos[i]
		s.doc.Todos = append(s.doc.Todos, s.transferCopy(todo))

		if todo.IsLocked {
			todo.Completed = false
			todo.CompletedAt = nil
			todo.CompletedDate = ""
			s.doc.TomorrowTodos[i] = todo
		} else {
			s.doc.TomorrowTodos = append(s.doc.TomorrowTodos[:i], s.doc.TomorrowTodos[i+1:]...)
		}
		return true
	}
	return false
}

// transferCopy clones a tomorrow item into a fresh today item. The original
// creation day is kept so history still groups by when the work was planned.
func (s *Service) transferCopy(todo model.Todo) model.Todo {
	now := s.now()
	out := todo
	out.ID = s.newID()
	out.CreatedAt = now
	out.TargetDate = model.DateOf(now)
	out.Completed = false
	out.CompletedAt = nil
	out.CompletedDate = ""
	return out
}

// ToggleLock flips the recurring-template flag on an item in either list.
func (s *Service) ToggleLock(id string) (model.Todo, bool) {
	return s.flipFlag(id, func(t *model.Todo) { t.IsLocked = !t.IsLocked })
}

// ToggleImportant flips the importance flag on an item in either list.
func (s *Service) ToggleImportant(id string) (model.Todo, bool) {
	return s.flipFlag(id, func(t *model.Todo) { t.IsImportant = !t.IsImportant })
}

func (s *Service) flipFlag(id string, flip func(*model.Todo)) (model.Todo, bool) {
	for _, todos := range [][]model.Todo{s.doc.Todos, s.doc.TomorrowTodos} {
		for i := range todos {
			if todos[i].ID == id {
				flip(&todos[i])
				return todos[i], true
			}
		}
	}
	return model.Todo{}, false
}
