package tracker

import (
	"growth-tracker/model"
)

// Generic history additions are capped; completion-driven pushes are not.
const historyCap = 100

// History returns entries matching the filter, grouped by creation day.
func (s *Service) History(filter model.HistoryFilter) []model.HistoryEntry {
	switch filter {
	case model.HistoryToday:
		return s.historyForDay(s.today())
	case model.HistoryYesterday:
		return s.historyForDay(model.DateOf(s.now().AddDate(0, 0, -1)))
	default:
		out := make([]model.HistoryEntry, len(s.doc.History))
		copy(out, s.doc.History)
		return out
	}
}

func (s *Service) historyForDay(day string) []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0)
	for _, h := range s.doc.History {
		if h.CreatedDate == day {
			out = append(out, h)
		}
	}
	return out
}

// AddToHistory prepends a free-form entry, keeping at most the 100 most
// recent ones added through this path.
func (s *Service) AddToHistory(text string, typ model.EntryType) model.HistoryEntry {
	now := s.now()
	entry := model.HistoryEntry{
		Text:        text,
		Type:        typ,
		Timestamp:   now,
		CreatedDate: model.DateOf(now),
	}
	s.doc.History = append([]model.HistoryEntry{entry}, s.doc.History...)
	if len(s.doc.History) > historyCap {
		s.doc.History = s.doc.History[:historyCap]
	}
	return entry
}

// ClearHistory drops every history entry. Counters are untouched.
func (s *Service) ClearHistory() {
	s.doc.History = []model.HistoryEntry{}
}
