package core

import "strings"

// CustomEvent is a user-added ad-hoc income/expense line item. Events are
// identified by their position in the list; removing one shifts the indices
// of everything after it.
type CustomEvent struct {
	Name    string
	Income  int64
	Expense int64
	Memo    string
}

// EventList is the ordered registry of custom events.
type EventList struct {
	items []CustomEvent
}

// Add appends an event. The name must be non-empty; negative amounts are
// clamped to zero so a stray minus sign cannot flip income into expense.
func (l *EventList) Add(name string, income, expense int64, memo string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyEventName
	}
	if income < 0 {
		income = 0
	}
	if expense < 0 {
		expense = 0
	}
	l.items = append(l.items, CustomEvent{
		Name:    name,
		Income:  income,
		Expense: expense,
		Memo:    strings.TrimSpace(memo),
	})
	return nil
}

// RemoveAt deletes the event at index. Positions held by callers become
// stale after a removal and must be re-read.
func (l *EventList) RemoveAt(index int) error {
	if index < 0 || index >= len(l.items) {
		return ErrIndexOutOfRange
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// All returns a copy of the event list in insertion order.
func (l *EventList) All() []CustomEvent {
	out := make([]CustomEvent, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of registered events.
func (l *EventList) Len() int {
	return len(l.items)
}

func (l *EventList) clear() {
	l.items = nil
}

func (l *EventList) replace(events []CustomEvent) {
	l.items = make([]CustomEvent, len(events))
	copy(l.items, events)
}
