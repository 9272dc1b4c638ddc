// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package overlay_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsdesk/internal/ui/dom"
	"github.com/taibuivan/newsdesk/internal/ui/overlay"
)

func newDocument(t *testing.T) *dom.Node {
	t.Helper()
	document, err := dom.Parse(strings.NewReader(`<html><body><main id="content"></main></body></html>`))
	require.NoError(t, err)
	return document
}

func openOverlays(ctx context.Context, t *testing.T, loop *dom.Loop, document *dom.Node) []*dom.Node {
	t.Helper()
	var open []*dom.Node
	require.NoError(t, loop.Do(ctx, func() { open = overlay.Open(document) }))
	return open
}

/*
TestModal_ShowMountsFetchedContent verifies the fetch → parse → mount path and
that the request is marked as XMLHttpRequest.
*/
func TestModal_ShowMountsFetchedContent(t *testing.T) {
	requests := make(chan *http.Request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests <- request.Clone(context.Background())
		_, _ = writer.Write([]byte(`<p>Delete "Hello"?</p><a href="#" data-id="entryDeleteCancel">Cancel</a>`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := dom.NewLoop(8)
	go func() { _ = loop.Run(ctx) }()

	base, err := url.Parse(server.URL + "/admin/news")
	require.NoError(t, err)

	document := newDocument(t)
	modal := overlay.NewModal(ctx, loop, document, overlay.WithClient(server.Client()), overlay.WithBaseURL(base))

	modal.Show("/admin/news/3/delete")

	require.Eventually(t, func() bool {
		return len(openOverlays(ctx, t, loop, document)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	received := <-requests
	assert.Equal(t, "/admin/news/3/delete", received.URL.Path)
	assert.Equal(t, "XMLHttpRequest", received.Header.Get("X-Requested-With"))

	container := openOverlays(ctx, t, loop, document)[0]
	assert.NotEmpty(t, overlay.ID(container))
	assert.Equal(t, "body", container.Parent.Tag)
	assert.Contains(t, container.Text(), `Delete "Hello"?`)

	require.NoError(t, loop.Do(ctx, func() { modal.Dismiss(container) }))
	assert.Empty(t, openOverlays(ctx, t, loop, document))
}

/*
TestModal_ShowFailureMountsNothing verifies that failed fetches stay silent.
*/
func TestModal_ShowFailureMountsNothing(t *testing.T) {
	hits := make(chan struct{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits <- struct{}{}
		http.Error(writer, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := dom.NewLoop(8)
	go func() { _ = loop.Run(ctx) }()

	document := newDocument(t)
	modal := overlay.NewModal(ctx, loop, document, overlay.WithClient(server.Client()))

	modal.Show(server.URL + "/missing")

	select {
	case <-hits:
	case <-time.After(2 * time.Second):
		t.Fatal("overlay was never fetched")
	}

	// Give the failed fetch a moment to (not) post a mount task.
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, openOverlays(ctx, t, loop, document))
}

/*
TestIsContainer only accepts containers mounted by a modal.
*/
func TestIsContainer(t *testing.T) {
	tests := []struct {
		name string
		node *dom.Node
		want bool
	}{
		{"mounted", dom.NewElement("div", "class", overlay.ContainerClass, overlay.IDAttr, "x"), true},
		{"fetched_modal_markup", dom.NewElement("div", "class", "modal fade"), false},
		{"id_without_class", dom.NewElement("div", overlay.IDAttr, "x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlay.IsContainer(tt.node))
		})
	}
}
