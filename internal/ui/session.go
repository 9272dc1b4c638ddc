// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ui runs admin pages headlessly: it fetches a rendered page, builds its
element tree, and attaches the admin controllers to a document-level router
driven by a single event loop.

Usage:

	session, err := ui.Open(ctx, "http://localhost:8080/admin/news", ui.Config{
	    Header: http.Header{"Authorization": {"Bearer " + token}},
	})
	navigated, err := session.Click(ctx, "delete-42")

A session lives until ctx is cancelled.

Session is a headless driver for tests and tooling. The server never imports
it; the admin page tests use it to exercise the controllers against real
rendered pages.
*/
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/taibuivan/newsdesk/internal/ui/controller"
	"github.com/taibuivan/newsdesk/internal/ui/dom"
	"github.com/taibuivan/newsdesk/internal/ui/overlay"
	"github.com/taibuivan/newsdesk/pkg/slug"
)

// loopCapacity bounds the number of queued UI tasks.
const loopCapacity = 64

// ErrElementNotFound is returned when an element id or overlay id does not resolve.
var ErrElementNotFound = errors.New("ui: element not found")

// Config controls how a session is wired.
type Config struct {
	// Client performs page and overlay fetches. Defaults to [http.DefaultClient].
	Client *http.Client

	// Header is sent with every fetch.
	Header http.Header

	// Decoder transliterates titles before slugging. nil disables transliteration.
	Decoder slug.Decoder

	// SlugMaxLength caps derived slugs. Zero, or anything above
	// [slug.DefaultMaxLength], means [slug.DefaultMaxLength].
	SlugMaxLength int

	// DisableOverlay runs the page without an overlay capability.
	DisableOverlay bool

	// Logger receives overlay diagnostics. Defaults to [slog.Default].
	Logger *slog.Logger
}

// Session is one open admin page.
type Session struct {
	document *dom.Node
	router   *dom.Router
	loop     *dom.Loop
}

// Open fetches pageURL and attaches the admin controllers to it.
func Open(ctx context.Context, pageURL string, cfg Config) (*Session, error) {
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SlugMaxLength == 0 {
		cfg.SlugMaxLength = slug.DefaultMaxLength
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("ui: invalid page url: %w", err)
	}

	document, err := fetchDocument(ctx, cfg, pageURL)
	if err != nil {
		return nil, err
	}

	loop := dom.NewLoop(loopCapacity)
	go func() {
		_ = loop.Run(ctx)
	}()

	router := dom.NewRouter(document)

	// A nil capability must stay a nil interface so the controller sees it as absent.
	var capability controller.Overlay
	if !cfg.DisableOverlay {
		options := []overlay.Option{
			overlay.WithClient(cfg.Client),
			overlay.WithBaseURL(base),
			overlay.WithLogger(cfg.Logger),
		}
		for key, values := range cfg.Header {
			for _, value := range values {
				options = append(options, overlay.WithHeader(key, value))
			}
		}
		capability = overlay.NewModal(ctx, loop, document, options...)
	}

	controller.NewDeleteConfirmation(capability).Register(router)
	controller.NewSlugDerivation(
		controller.WithDecoder(cfg.Decoder),
		controller.WithMaxLength(cfg.SlugMaxLength),
	).Register(router)

	return &Session{document: document, router: router, loop: loop}, nil
}

// # Interaction

// Click clicks the element with the given id and reports whether the default
// navigation would proceed.
func (s *Session) Click(ctx context.Context, id string) (navigated bool, err error) {
	err = s.onElement(ctx, id, func(element *dom.Node) {
		navigated = !s.router.Trigger(dom.Click, element).DefaultPrevented()
	})
	return navigated, err
}

// ClickIn clicks the first element matching selector inside the overlay with
// the given overlay id.
func (s *Session) ClickIn(ctx context.Context, overlayID string, selector dom.Selector) (navigated bool, err error) {
	found := false
	err = s.loop.Do(ctx, func() {
		for _, container := range overlay.Open(s.document) {
			if overlay.ID(container) != overlayID {
				continue
			}
			matches := container.FindAll(selector.Matches)
			if len(matches) == 0 {
				return
			}
			found = true
			navigated = !s.router.Trigger(dom.Click, matches[0]).DefaultPrevented()
			return
		}
	})
	if err == nil && !found {
		err = fmt.Errorf("%w: %s in overlay %s", ErrElementNotFound, selector, overlayID)
	}
	return navigated, err
}

// Type replaces the value of a field and fires keyup then change on it.
func (s *Session) Type(ctx context.Context, id, value string) error {
	return s.onElement(ctx, id, func(element *dom.Node) {
		element.SetValue(value)
		s.router.Trigger(dom.KeyUp, element)
		s.router.Trigger(dom.Change, element)
	})
}

// Value returns the current value of a field.
func (s *Session) Value(ctx context.Context, id string) (value string, err error) {
	err = s.onElement(ctx, id, func(element *dom.Node) {
		value = element.Value()
	})
	return value, err
}

// OverlayIDs lists the overlays currently mounted, in document order.
func (s *Session) OverlayIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.loop.Do(ctx, func() {
		for _, container := range overlay.Open(s.document) {
			ids = append(ids, overlay.ID(container))
		}
	})
	return ids, err
}

// OverlayText returns the text content of a mounted overlay.
func (s *Session) OverlayText(ctx context.Context, overlayID string) (text string, err error) {
	found := false
	err = s.loop.Do(ctx, func() {
		for _, container := range overlay.Open(s.document) {
			if overlay.ID(container) == overlayID {
				found = true
				text = container.Text()
				return
			}
		}
	})
	if err == nil && !found {
		err = fmt.Errorf("%w: overlay %s", ErrElementNotFound, overlayID)
	}
	return text, err
}

// # Internals

func (s *Session) onElement(ctx context.Context, id string, fn func(*dom.Node)) error {
	found := false
	err := s.loop.Do(ctx, func() {
		element := s.document.ElementByID(id)
		if element == nil {
			return
		}
		found = true
		fn(element)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	return nil
}

func fetchDocument(ctx context.Context, cfg Config, pageURL string) (*dom.Node, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ui: build request: %w", err)
	}
	for key, values := range cfg.Header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}

	response, err := cfg.Client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("ui: fetch page: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ui: fetch page: unexpected status %d", response.StatusCode)
	}

	return dom.Parse(response.Body)
}
