package model

import "time"

// DateLayout is the calendar-day format used everywhere dates are persisted.
// Day strings compare correctly with plain string ordering.
const DateLayout = "2006-01-02"

// DateOf returns the local calendar day of t as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// EntryType tags a history entry with the list it came from.
type EntryType string

const (
	EntryTodo     EntryType = "todo"
	EntryTomorrow EntryType = "tomorrow"
)

// HistoryFilter selects which history entries to show, grouped by creation day.
type HistoryFilter string

const (
	HistoryToday     HistoryFilter = "today"
	HistoryYesterday HistoryFilter = "yesterday"
	HistoryAll       HistoryFilter = "all"
)

// Link is a bookmark attached to an outline node.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// OutlineNode is one node of a category's outline forest.
// Children are owned; ParentID is empty for root nodes (level 1).
type OutlineNode struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	ParentID string         `json:"parentId,omitempty"`
	Level    int            `json:"level"`
	Expanded bool           `json:"expanded"`
	Children []*OutlineNode `json:"children"`
	Links    []Link         `json:"links,omitempty"`
}

// Todo is an item on the today or tomorrow list. The two lists share a shape;
// only TargetDate and the history entry type differ.
// OutlineItem is a weak reference to an outline node id; it may dangle.
type Todo struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Completed     bool       `json:"completed"`
	Category      string     `json:"category"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedDate   string     `json:"createdDate"`
	TargetDate    string     `json:"targetDate"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	CompletedDate string     `json:"completedDate,omitempty"`
	IsOverdue     bool       `json:"isOverdue"`
	OutlineItem   string     `json:"outlineItem,omitempty"`
	IsLocked      bool       `json:"isLocked"`
	IsImportant   bool       `json:"isImportant"`
}

// HistoryEntry records a completion. Entries are attributed to the day the
// work was created, not the day it finished.
// TodoID links the entry to its source item; entries migrated from older
// documents may not have one.
type HistoryEntry struct {
	TodoID        string    `json:"todoId,omitempty"`
	Text          string    `json:"text"`
	Category      string    `json:"category"`
	Type          EntryType `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	CreatedDate   string    `json:"createdDate"`
	CompletedDate string    `json:"completedDate,omitempty"`
	IsOverdue     bool      `json:"isOverdue"`
	OutlineRef    string    `json:"outlineRef,omitempty"`
}

// Stats holds the process-wide counters.
// LastActiveDate is the last calendar day on which rollover ran.
type Stats struct {
	StreakDays     int    `json:"streakDays"`
	TodayCompleted int    `json:"todayCompleted"`
	TotalCompleted int    `json:"totalCompleted"`
	LastActiveDate string `json:"lastActiveDate,omitempty"`
	DailyResetTime string `json:"dailyResetTime"`
}

// Document is the full persisted state: the single storage-key payload.
type Document struct {
	Categories    []string                  `json:"categories"`
	Outlines      map[string][]*OutlineNode `json:"outlines"`
	Todos         []Todo                    `json:"todos"`
	TomorrowTodos []Todo                    `json:"tomorrowTodos"`
	History       []HistoryEntry            `json:"history"`
	Stats         Stats                     `json:"stats"`
}

// DefaultCategories are the categories a fresh document starts with.
var DefaultCategories = []string{"学习", "健康", "工作"}

// DefaultResetTime is the HH:MM wall-clock time of the day boundary.
const DefaultResetTime = "00:00"

// NewDocument returns an initialized empty document.
func NewDocument() Document {
	categories := make([]string, len(DefaultCategories))
	copy(categories, DefaultCategories)

	outlines := make(map[string][]*OutlineNode, len(categories))
	for _, c := range categories {
		outlines[c] = []*OutlineNode{}
	}

	return Document{
		Categories:    categories,
		Outlines:      outlines,
		Todos:         []Todo{},
		TomorrowTodos: []Todo{},
		History:       []HistoryEntry{},
		Stats: Stats{
			DailyResetTime: DefaultResetTime,
		},
	}
}
