// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package controller

import (
	"github.com/taibuivan/newsdesk/internal/ui/dom"
	"github.com/taibuivan/newsdesk/pkg/slug"
)

// Default field ids of the entry form.
const (
	TitleFieldID = "id_title"
	SlugFieldID  = "id_slug"
)

// SlugDerivation overwrites the slug field from the title field on every
// title edit. Manual edits to the slug field do not survive the next one.
type SlugDerivation struct {
	decode    slug.Decoder
	maxLength int
	titleID   string
	slugID    string
	deriver   slug.Deriver
}

// SlugOption customizes a [SlugDerivation].
type SlugOption func(*SlugDerivation)

// WithDecoder enables transliteration before slugging. nil disables it.
func WithDecoder(decode slug.Decoder) SlugOption {
	return func(c *SlugDerivation) { c.decode = decode }
}

// WithMaxLength lowers the slug length cap. Values outside
// 1..[slug.DefaultMaxLength] fall back to [slug.DefaultMaxLength].
func WithMaxLength(maxLength int) SlugOption {
	return func(c *SlugDerivation) { c.maxLength = maxLength }
}

// WithFields overrides the title and slug field ids.
func WithFields(titleID, slugID string) SlugOption {
	return func(c *SlugDerivation) {
		c.titleID = titleID
		c.slugID = slugID
	}
}

// NewSlugDerivation creates the controller. By default it reads "id_title",
// writes "id_slug", caps at [slug.DefaultMaxLength] and does not transliterate.
func NewSlugDerivation(opts ...SlugOption) *SlugDerivation {
	c := &SlugDerivation{
		maxLength: slug.DefaultMaxLength,
		titleID:   TitleFieldID,
		slugID:    SlugFieldID,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.deriver = slug.NewDeriver(c.decode, c.maxLength)
	return c
}

// Register attaches the title listeners (keyup and change) to router.
func (c *SlugDerivation) Register(router *dom.Router) {
	router.On(dom.KeyUp, dom.ByID(c.titleID), c.OnTitleChanged)
	router.On(dom.Change, dom.ByID(c.titleID), c.OnTitleChanged)
}

// OnTitleChanged writes the slug derived from the title's current value into
// the slug field of the same document.
func (c *SlugDerivation) OnTitleChanged(_ *dom.Event, title *dom.Node) {
	field := title.Root().ElementByID(c.slugID)
	if field == nil {
		return
	}
	field.SetValue(c.Derive(title.Value()))
}

// Derive returns the slug for a title value.
func (c *SlugDerivation) Derive(title string) string {
	return c.deriver.Derive(title)
}
