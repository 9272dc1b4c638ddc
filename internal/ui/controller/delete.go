// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package controller holds the admin UI behaviours that are attached to a
document through a [dom.Router].

  - [DeleteConfirmation]: opens a confirmation overlay instead of following a
    delete link, and closes it again from its cancel button.
  - [SlugDerivation]: keeps the slug field derived from the title field.

Both are stateless: everything they know arrives with the event.
*/
package controller

import (
	"github.com/taibuivan/newsdesk/internal/ui/dom"
	"github.com/taibuivan/newsdesk/internal/ui/overlay"
)

// # Markers

const (
	// DeleteTriggerAttr / DeleteTriggerValue arm the delete-confirmation trigger.
	DeleteTriggerAttr  = "data-class"
	DeleteTriggerValue = "toggleDeleteModal"

	// CancelAttr / CancelValue arm the cancel button inside an overlay.
	CancelAttr  = "data-id"
	CancelValue = "entryDeleteCancel"
)

// Overlay is the overlay-display capability.
//
// [overlay.Modal] is the production implementation.
type Overlay interface {
	// Show requests an overlay populated from url. It must not block.
	Show(url string)

	// Dismiss closes the overlay rooted at container.
	Dismiss(container *dom.Node)
}

// DeleteConfirmation routes delete links through a confirmation overlay.
type DeleteConfirmation struct {
	overlay Overlay
}

// NewDeleteConfirmation creates the controller. A nil overlay means the
// capability is unavailable: delete links then navigate normally.
func NewDeleteConfirmation(capability Overlay) *DeleteConfirmation {
	return &DeleteConfirmation{overlay: capability}
}

// Register attaches both click handlers to router.
func (c *DeleteConfirmation) Register(router *dom.Router) {
	router.On(dom.Click, dom.ByAttr(DeleteTriggerAttr, DeleteTriggerValue), c.HandleDeleteTrigger)
	router.On(dom.Click, dom.ByAttr(CancelAttr, CancelValue), c.HandleCancelTrigger)
}

// HandleDeleteTrigger opens the confirmation overlay for a delete link.
//
// Without an overlay capability, or without an href, the event is left alone
// and the link's own navigation proceeds.
func (c *DeleteConfirmation) HandleDeleteTrigger(event *dom.Event, element *dom.Node) {
	if c.overlay == nil {
		return
	}

	target, ok := element.Attr("href")
	if !ok || target == "" {
		return
	}

	event.PreventDefault()
	c.overlay.Show(target)
}

// HandleCancelTrigger dismisses the overlay enclosing the cancel element.
//
// Only the nearest enclosing overlay is closed; other open overlays are left
// untouched. Outside an overlay, or without the capability, nothing happens.
func (c *DeleteConfirmation) HandleCancelTrigger(event *dom.Event, element *dom.Node) {
	if c.overlay == nil {
		return
	}

	container := element.Closest(overlay.IsContainer)
	if container == nil {
		return
	}

	event.PreventDefault()
	c.overlay.Dismiss(container)
}
