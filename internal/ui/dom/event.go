// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom

// EventType names a UI event.
type EventType string

const (
	Click  EventType = "click"
	KeyUp  EventType = "keyup"
	Change EventType = "change"
	Input  EventType = "input"
)

// Event is a single UI activation travelling from its target up the tree.
//
// It lives for the duration of one dispatch.
type Event struct {
	Type   EventType
	Target *Node

	defaultPrevented bool
}

// NewEvent creates an event of the given type aimed at target.
func NewEvent(eventType EventType, target *Node) *Event {
	return &Event{Type: eventType, Target: target}
}

// PreventDefault suppresses the default action (link navigation, form submit).
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler suppressed the default action.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }
