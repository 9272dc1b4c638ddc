// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package overlay implements the modal overlay capability used by the admin UI.

A [Modal] fetches confirmation content over HTTP and mounts it into the
document as a `<div class="modal">` container. Fetching happens off the event
loop; mounting is posted back onto it.

Failure policy:

  - Fire-and-forget: [Modal.Show] never reports an error to its caller.
  - A failed or non-200 fetch is logged and nothing is mounted.
  - There is no retry and no timeout beyond the session context.
*/
package overlay

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/taibuivan/newsdesk/internal/platform/constants"
	"github.com/taibuivan/newsdesk/internal/ui/dom"
	"github.com/taibuivan/newsdesk/pkg/uuidv7"
)

// # Markup Contract

const (
	// ContainerClass marks an overlay container.
	ContainerClass = "modal"

	// IDAttr carries the unique id of a mounted overlay.
	IDAttr = "data-overlay"
)

// Modal displays fetched content as an overlay.
type Modal struct {
	ctx      context.Context
	loop     *dom.Loop
	document *dom.Node
	client   *http.Client
	baseURL  *url.URL
	header   http.Header
	logger   *slog.Logger
}

// Option customizes a [Modal].
type Option func(*Modal)

// WithClient sets the HTTP client used for fetches.
func WithClient(client *http.Client) Option {
	return func(modal *Modal) { modal.client = client }
}

// WithBaseURL resolves relative overlay URLs (usually the page URL).
func WithBaseURL(base *url.URL) Option {
	return func(modal *Modal) { modal.baseURL = base }
}

// WithHeader adds a header to every fetch (e.g. a session cookie).
func WithHeader(key, value string) Option {
	return func(modal *Modal) { modal.header.Add(key, value) }
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(modal *Modal) { modal.logger = logger }
}

// NewModal creates a modal bound to a document and the loop that owns it.
//
// ctx bounds every fetch started by [Modal.Show].
func NewModal(ctx context.Context, loop *dom.Loop, document *dom.Node, opts ...Option) *Modal {
	modal := &Modal{
		ctx:      ctx,
		loop:     loop,
		document: document,
		client:   http.DefaultClient,
		header:   make(http.Header),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(modal)
	}
	return modal
}

// # Capability

// Show fetches target and mounts the response as a new overlay.
//
// It returns immediately; the overlay appears once the fetch completes.
func (m *Modal) Show(target string) {
	go m.fetchAndMount(target)
}

// Dismiss removes an overlay container from the document.
func (m *Modal) Dismiss(container *dom.Node) {
	container.Remove()
	m.logger.Debug("overlay_dismissed", slog.String("overlay_id", ID(container)))
}

// ID returns the overlay id of a container, or "".
func ID(container *dom.Node) string {
	id, _ := container.Attr(IDAttr)
	return id
}

// IsContainer reports whether node is a container mounted by a [Modal].
// Fetched markup may reuse the container class; only the mounted container
// carries [IDAttr].
func IsContainer(node *dom.Node) bool {
	_, mounted := node.Attr(IDAttr)
	return mounted && node.HasClass(ContainerClass)
}

// Open returns the overlay containers currently mounted under root.
func Open(root *dom.Node) []*dom.Node {
	return root.FindAll(IsContainer)
}

// # Internals

func (m *Modal) fetchAndMount(target string) {
	container, err := m.fetch(target)
	if err != nil {
		m.logger.Warn("overlay_fetch_failed", slog.String("url", target), slog.Any("error", err))
		return
	}

	err = m.loop.Post(m.ctx, func() {
		mountPoint(m.document).AppendChild(container)
	})
	if err != nil {
		m.logger.Debug("overlay_mount_skipped", slog.String("url", target), slog.Any("error", err))
		return
	}

	m.logger.Debug("overlay_shown", slog.String("url", target), slog.String("overlay_id", ID(container)))
}

// fetch retrieves target and parses it into a detached overlay container.
func (m *Modal) fetch(target string) (*dom.Node, error) {
	resolved, err := m.resolve(target)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(m.ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, fmt.Errorf("overlay: build request: %w", err)
	}
	for key, values := range m.header {
		for _, value := range values {
			request.Header.Add(key, value)
		}
	}
	request.Header.Set(constants.HeaderXRequestedWith, constants.XMLHttpRequest)

	response, err := m.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("overlay: fetch: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overlay: unexpected status %d", response.StatusCode)
	}

	container := dom.NewElement("div", "class", ContainerClass, IDAttr, uuidv7.New())
	if err := dom.ParseFragment(response.Body, container); err != nil {
		return nil, err
	}
	return container, nil
}

func (m *Modal) resolve(target string) (string, error) {
	reference, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("overlay: invalid url %q: %w", target, err)
	}
	if m.baseURL == nil {
		return reference.String(), nil
	}
	return m.baseURL.ResolveReference(reference).String(), nil
}

// mountPoint returns the body element, or the document itself.
func mountPoint(document *dom.Node) *dom.Node {
	bodies := document.FindAll(func(node *dom.Node) bool { return node.Tag == "body" })
	if len(bodies) == 0 {
		return document
	}
	return bodies[0]
}
