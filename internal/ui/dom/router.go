// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dom

// HandlerFunc handles an event for the element its selector matched.
type HandlerFunc func(event *Event, element *Node)

type route struct {
	selector Selector
	handler  HandlerFunc
}

// Router delegates events raised anywhere under a root to handlers keyed by
// event type and [Selector].
//
// Matching happens at dispatch time, so elements inserted after registration
// (an overlay body, for instance) are picked up without re-registering.
type Router struct {
	root   *Node
	routes map[EventType][]route
}

// NewRouter creates a router scoped to root.
func NewRouter(root *Node) *Router {
	return &Router{root: root, routes: make(map[EventType][]route)}
}

// Root returns the container the router listens on.
func (r *Router) Root() *Node { return r.root }

// On registers handler for events of eventType whose path crosses an element
// matching selector.
func (r *Router) On(eventType EventType, selector Selector, handler HandlerFunc) {
	r.routes[eventType] = append(r.routes[eventType], route{selector: selector, handler: handler})
}

// Dispatch walks from the event target up to the root, invoking every handler
// whose selector matches the current element (innermost element first).
//
// Events whose target lies outside the root are ignored.
func (r *Router) Dispatch(event *Event) {
	if event == nil || event.Target == nil || !r.root.Contains(event.Target) {
		return
	}

	routes := r.routes[event.Type]
	if len(routes) == 0 {
		return
	}

	for node := event.Target; node != nil; node = node.Parent {
		for _, candidate := range routes {
			if candidate.selector.Matches(node) {
				candidate.handler(event, node)
			}
		}
		if node == r.root {
			return
		}
	}
}

// Trigger dispatches a new event of eventType at target and returns it, so
// callers can inspect [Event.DefaultPrevented].
func (r *Router) Trigger(eventType EventType, target *Node) *Event {
	event := NewEvent(eventType, target)
	r.Dispatch(event)
	return event
}
