package tracker

import (
	"time"

	"growth-tracker/model"
)

// CheckDailyReset applies day-boundary state changes exactly once per calendar
// day: overdue marking, streak gap check, and the per-day completion counter
// reset. Safe to call any number of times; within the same day it only
// reasserts lastActiveDate. Returns true when a day transition was processed.
//
// The engine cannot catch up multi-day gaps beyond the streak reset; the host
// must call this at least once per day boundary (startup, focus regained,
// midnight timer, hourly safety tick).
func (s *Service) CheckDailyReset() bool {
	now := s.now()
	today := model.DateOf(now)
	last := s.doc.Stats.LastActiveDate

	crossed := last != "" && last != today
	if crossed {
		s.processOverdue(today)

		// A gap of two or more days breaks the streak. Rollover never
		// increments it; that happens on the first completion of a day.
		yesterday := model.DateOf(now.AddDate(0, 0, -1))
		if last != yesterday {
			s.doc.Stats.StreakDays = 0
		}

		s.doc.Stats.TodayCompleted = 0
	}

	s.doc.Stats.LastActiveDate = today
	return crossed
}

// processOverdue flags every incomplete item whose target day has passed.
// Items stay in their list; the flag never reverts on its own.
func (s *Service) processOverdue(today string) {
	for i := range s.doc.Todos {
		if !s.doc.Todos[i].Completed && s.doc.Todos[i].TargetDate < today {
			s.doc.Todos[i].IsOverdue = true
		}
	}
	for i := range s.doc.TomorrowTodos {
		if !s.doc.TomorrowTodos[i].Completed && s.doc.TomorrowTodos[i].TargetDate < today {
			s.doc.TomorrowTodos[i].IsOverdue = true
		}
	}
}

// NextResetAt returns the first daily-reset instant after from, derived from
// the stats' HH:MM reset-time setting. Used by hosts to schedule the
// day-boundary timer.
func (s *Service) NextResetAt(from time.Time) time.Time {
	boundary, err := time.Parse("15:04", s.doc.Stats.DailyResetTime)
	if err != nil {
		boundary, _ = time.Parse("15:04", model.DefaultResetTime)
	}

	next := time.Date(from.Year(), from.Month(), from.Day(),
		boundary.Hour(), boundary.Minute(), 0, 0, from.Location())
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
