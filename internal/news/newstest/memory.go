// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package newstest provides an in-memory news.Repository for tests of the
// news service and of the handlers built on it.
package newstest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/newsdesk/internal/news"
	"github.com/taibuivan/newsdesk/internal/platform/apperr"
)

// Repository is a concurrency-safe in-memory [news.Repository] that follows
// the same filter, ordering and constraint rules as the PostgreSQL one.
type Repository struct {
	mu           sync.Mutex
	entries      map[int64]*news.Entry
	categories   []*news.Category
	nextEntry    int64
	nextCategory int64

	// Calls counts ListEntries invocations.
	Calls int
}

var _ news.Repository = (*Repository)(nil)

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{entries: make(map[int64]*news.Entry)}
}

// AddCategory stores a category and returns it with its id.
func (repository *Repository) AddCategory(name, slug string, parentID *int64, hideOnList bool) news.Category {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextCategory++
	category := &news.Category{ID: repository.nextCategory, Name: name, Slug: slug, ParentID: parentID, HideOnList: hideOnList}
	repository.categories = append(repository.categories, category)
	return *category
}

func (repository *Repository) ListEntries(_ context.Context, filter news.Filter, limit, offset int) ([]*news.Entry, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.Calls++

	var matched []*news.Entry
	for _, entry := range repository.entries {
		if repository.matches(entry, filter) {
			matched = append(matched, entry)
		}
	}

	slices.SortFunc(matched, func(a, b *news.Entry) int {
		switch {
		case a.PubDate != nil && b.PubDate == nil:
			return -1
		case a.PubDate == nil && b.PubDate != nil:
			return 1
		case a.PubDate != nil && !a.PubDate.Equal(*b.PubDate):
			return b.PubDate.Compare(*a.PubDate)
		}
		return int(b.ID - a.ID)
	})

	total := len(matched)
	start := min(offset, total)
	end := min(start+limit, total)

	page := make([]*news.Entry, 0, end-start)
	for _, entry := range matched[start:end] {
		page = append(page, clone(entry))
	}
	return page, total, nil
}

func (repository *Repository) matches(entry *news.Entry, filter news.Filter) bool {
	if filter.Language != "" || filter.PublishedOnly {
		found := slices.ContainsFunc(entry.Translations, func(translation news.Translation) bool {
			return (filter.Language == "" || translation.Language == filter.Language) &&
				(!filter.PublishedOnly || translation.IsPublished)
		})
		if !found {
			return false
		}
	}
	if filter.PublishedOnly && entry.PubDate != nil && entry.PubDate.After(filter.Now) {
		return false
	}
	if filter.ExcludeHidden && slices.ContainsFunc(entry.Categories, func(category news.Category) bool { return category.HideOnList }) {
		return false
	}
	if filter.CategorySlug != "" && !slices.ContainsFunc(entry.Categories, func(category news.Category) bool {
		return category.Slug == filter.CategorySlug || repository.parentSlug(category) == filter.CategorySlug
	}) {
		return false
	}
	if filter.AuthorID != "" && (entry.AuthorID == nil || *entry.AuthorID != filter.AuthorID) {
		return false
	}
	return true
}

func (repository *Repository) parentSlug(category news.Category) string {
	if category.ParentID == nil {
		return ""
	}
	for _, candidate := range repository.categories {
		if candidate.ID == *category.ParentID {
			return candidate.Slug
		}
	}
	return ""
}

func (repository *Repository) GetEntry(_ context.Context, id int64) (*news.Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry, ok := repository.entries[id]
	if !ok {
		return nil, apperr.NotFound("Entry")
	}
	return clone(entry), nil
}

func (repository *Repository) GetEntryBySlug(_ context.Context, language, slug string) (*news.Entry, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, entry := range repository.entries {
		if translation, ok := entry.Translation(language); ok && translation.Slug == slug {
			return clone(entry), nil
		}
	}
	return nil, apperr.NotFound("Entry")
}

func (repository *Repository) CreateEntry(_ context.Context, entry *news.Entry, categoryIDs []int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if err := repository.checkSlugs(entry, 0); err != nil {
		return err
	}
	categories, err := repository.resolve(categoryIDs)
	if err != nil {
		return err
	}

	repository.nextEntry++
	now := time.Now()
	entry.ID = repository.nextEntry
	entry.CreatedAt, entry.UpdatedAt = now, now
	entry.Categories = categories

	repository.entries[entry.ID] = clone(entry)
	return nil
}

func (repository *Repository) UpdateEntry(_ context.Context, entry *news.Entry, categoryIDs []int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.entries[entry.ID]
	if !ok {
		return apperr.NotFound("Entry")
	}
	if err := repository.checkSlugs(entry, entry.ID); err != nil {
		return err
	}
	categories, err := repository.resolve(categoryIDs)
	if err != nil {
		return err
	}

	entry.AuthorID, entry.AuthorName = stored.AuthorID, stored.AuthorName
	entry.CreatedAt, entry.UpdatedAt = stored.CreatedAt, time.Now()
	entry.Categories = categories

	repository.entries[entry.ID] = clone(entry)
	return nil
}

func (repository *Repository) DeleteEntry(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.entries[id]; !ok {
		return apperr.NotFound("Entry")
	}
	delete(repository.entries, id)
	return nil
}

func (repository *Repository) SetPublished(_ context.Context, id int64, language string, published bool) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	entry, ok := repository.entries[id]
	if !ok {
		return apperr.NotFound("Entry")
	}

	changed := 0
	for i := range entry.Translations {
		if language == "" || entry.Translations[i].Language == language {
			entry.Translations[i].IsPublished = published
			changed++
		}
	}
	if changed == 0 {
		return apperr.NotFound("Entry")
	}
	return nil
}

func (repository *Repository) ListCategories(_ context.Context) ([]*news.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	categories := make([]*news.Category, 0, len(repository.categories))
	for _, category := range repository.categories {
		copied := *category
		categories = append(categories, &copied)
	}
	return categories, nil
}

func (repository *Repository) GetCategoryBySlug(_ context.Context, slug string) (*news.Category, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, category := range repository.categories {
		if category.Slug == slug {
			copied := *category
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Category")
}

func (repository *Repository) AuthorName(_ context.Context, authorID string) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, entry := range repository.entries {
		if entry.AuthorID != nil && *entry.AuthorID == authorID {
			return entry.AuthorName, nil
		}
	}
	return "", apperr.NotFound("Author")
}

// checkSlugs enforces the unique (language, slug) pair, ignoring entry self.
func (repository *Repository) checkSlugs(entry *news.Entry, self int64) error {
	for id, other := range repository.entries {
		if id == self {
			continue
		}
		for _, translation := range entry.Translations {
			if existing, ok := other.Translation(translation.Language); ok && existing.Slug == translation.Slug {
				return apperr.Conflict("A record with the same identifier already exists")
			}
		}
	}
	return nil
}

func (repository *Repository) resolve(ids []int64) ([]news.Category, error) {
	categories := []news.Category{}
	for _, id := range ids {
		index := slices.IndexFunc(repository.categories, func(category *news.Category) bool { return category.ID == id })
		if index < 0 {
			return nil, apperr.ValidationError("Referenced record does not exist")
		}
		categories = append(categories, *repository.categories[index])
	}
	return categories, nil
}

func clone(entry *news.Entry) *news.Entry {
	copied := *entry
	copied.Translations = slices.Clone(entry.Translations)
	copied.Categories = slices.Clone(entry.Categories)
	if copied.Translations == nil {
		copied.Translations = []news.Translation{}
	}
	if copied.Categories == nil {
		copied.Categories = []news.Category{}
	}
	return &copied
}
