// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package news manages multilingual news entries: storage, publication rules,
the public JSON API and the RSS feeds.

An [Entry] carries language-independent data (author, publication date,
image, categories). Everything shown to readers lives in one [Translation]
per language, and a translation is public only when it is published and the
entry's publication date has been reached (or is unset).
*/
package news

import (
	"fmt"
	"time"
)

// Entry is a news article with one translation per language.
type Entry struct {
	ID           int64         `json:"id"`
	AuthorID     *string       `json:"author_id"`
	AuthorName   string        `json:"author_name,omitempty"`
	PubDate      *time.Time    `json:"pub_date"`
	ImageURL     *string       `json:"image_url"`
	Translations []Translation `json:"translations"`
	Categories   []Category    `json:"categories"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Translation holds the translatable fields of an [Entry].
type Translation struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	IsPublished bool   `json:"is_published"`
}

// Category groups entries. Entries of a category with HideOnList are left out
// of the main list.
type Category struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ParentID   *int64 `json:"parent_id,omitempty"`
	HideOnList bool   `json:"hide_on_list"`
}

// Translation returns the translation in language, if any.
func (e *Entry) Translation(language string) (*Translation, bool) {
	for i := range e.Translations {
		if e.Translations[i].Language == language {
			return &e.Translations[i], true
		}
	}
	return nil, false
}

// PreferredTranslation picks the translation in language, then in fallback,
// then the first one. It returns nil for an entry without translations.
func (e *Entry) PreferredTranslation(language, fallback string) *Translation {
	if translation, ok := e.Translation(language); ok {
		return translation
	}
	if translation, ok := e.Translation(fallback); ok {
		return translation
	}
	if len(e.Translations) > 0 {
		return &e.Translations[0]
	}
	return nil
}

// IsPublic reports whether the translation in language is visible to readers at now.
func (e *Entry) IsPublic(language string, now time.Time) bool {
	translation, ok := e.Translation(language)
	if !ok || !translation.IsPublished {
		return false
	}
	return e.PubDate == nil || !e.PubDate.After(now)
}

// AbsoluteURL is the site path of the entry for the preferred translation.
// Dated entries live under /news/{yyyy}/{mm}/{dd}/{slug}/.
func (e *Entry) AbsoluteURL(language, fallback string) string {
	translation := e.PreferredTranslation(language, fallback)
	if translation == nil {
		return ""
	}
	if e.PubDate != nil {
		date := e.PubDate.UTC()
		return fmt.Sprintf("/news/%04d/%02d/%02d/%s/", date.Year(), int(date.Month()), date.Day(), translation.Slug)
	}
	return fmt.Sprintf("/news/%s/", translation.Slug)
}

// Filter selects entries in list queries.
type Filter struct {
	// Language restricts results to entries translated into it. Empty matches any.
	Language string

	// PublishedOnly keeps entries whose translation (in Language, or any when
	// Language is empty) is published and whose PubDate is unset or <= Now.
	PublishedOnly bool
	Now           time.Time

	// ExcludeHidden drops entries in a category marked HideOnList.
	ExcludeHidden bool

	// CategorySlug keeps entries in the category or one of its direct children.
	CategorySlug string

	// AuthorID keeps entries written by one author.
	AuthorID string
}

// RecentQuery describes a short list of the newest public entries.
type RecentQuery struct {
	Language    string
	AnyLanguage bool
	Category    string
	AuthorID    string
	Count       int
}

// EntryInput is the writable part of an entry.
type EntryInput struct {
	PubDate      *time.Time         `json:"pub_date"`
	ImageURL     *string            `json:"image_url"`
	CategoryIDs  []int64            `json:"category_ids"`
	Translations []TranslationInput `json:"translations"`
}

// TranslationInput is one translation of an [EntryInput]. An empty Slug is
// derived from Title.
type TranslationInput struct {
	Language    string `json:"language"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	IsPublished bool   `json:"is_published"`
}

// Publication actions.
const (
	ActionPublish   = "publish"
	ActionUnpublish = "unpublish"
)

// Field names for validation.
const (
	FieldTranslations = "translations"
	FieldLanguage     = "language"
	FieldTitle        = "title"
	FieldSlug         = "slug"
	FieldImageURL     = "image_url"
	FieldAction       = "action"
	FieldCount        = "count"
)

// Limits.
const (
	TitleMaxLength   = 512
	SlugColumnLength = 512
	DefaultRecent    = 10
	MaxRecent        = 50
)
