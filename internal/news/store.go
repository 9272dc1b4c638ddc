// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import "context"

// Repository persists entries and categories.
//
// Lookups of missing rows return an apperr NOT_FOUND error; a duplicate
// (language, slug) pair returns CONFLICT.
type Repository interface {
	ListEntries(ctx context.Context, filter Filter, limit, offset int) ([]*Entry, int, error)
	GetEntry(ctx context.Context, id int64) (*Entry, error)
	GetEntryBySlug(ctx context.Context, language, slug string) (*Entry, error)
	CreateEntry(ctx context.Context, entry *Entry, categoryIDs []int64) error
	UpdateEntry(ctx context.Context, entry *Entry, categoryIDs []int64) error
	DeleteEntry(ctx context.Context, id int64) error

	// SetPublished flips the publication flag of one translation, or of every
	// translation when language is empty.
	SetPublished(ctx context.Context, id int64, language string, published bool) error

	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)

	// AuthorName returns the display name stored with the author's entries.
	AuthorName(ctx context.Context, authorID string) (string, error)
}
