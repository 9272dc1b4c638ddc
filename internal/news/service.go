// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/internal/platform/validate"
	"github.com/taibuivan/newsdesk/pkg/slug"
)

// Settings configures a [Service].
type Settings struct {
	// Languages are the site languages; the first is used when no default is set.
	Languages       []string
	DefaultLanguage string

	// Slugs derives slugs for translations submitted without one. The zero
	// value caps at [slug.DefaultMaxLength] without transliteration.
	Slugs slug.Deriver

	// Now is the clock used for publication checks. Defaults to [time.Now].
	Now func() time.Time
}

// Service implements the news use cases on top of a [Repository].
type Service struct {
	repo     Repository
	settings Settings
	logger   *slog.Logger
}

// NewService creates a news service.
func NewService(repo Repository, settings Settings, logger *slog.Logger) *Service {
	if settings.Now == nil {
		settings.Now = time.Now
	}
	if settings.DefaultLanguage == "" && len(settings.Languages) > 0 {
		settings.DefaultLanguage = settings.Languages[0]
	}
	return &Service{repo: repo, settings: settings, logger: logger}
}

// DefaultLanguage is the fallback language for translations.
func (service *Service) DefaultLanguage() string {
	return service.settings.DefaultLanguage
}

// Languages lists the site languages.
func (service *Service) Languages() []string {
	return service.settings.Languages
}

// DeriveSlug derives the slug proposed for a title.
func (service *Service) DeriveSlug(title string) string {
	return service.settings.Slugs.Derive(title)
}

// # Reading

// ListPublished lists the main news page. Entries in hidden categories are
// always left out; everything else is visible to admins regardless of its
// publication state and language.
func (service *Service) ListPublished(ctx context.Context, language string, isAdmin bool, limit, offset int) ([]*Entry, int, error) {
	filter := Filter{ExcludeHidden: true}
	if !isAdmin {
		filter.Language = language
		filter.PublishedOnly = true
		filter.Now = service.settings.Now()
	}
	return service.repo.ListEntries(ctx, filter, limit, offset)
}

// ListAll lists every entry for the admin pages, newest first, regardless of
// publication state, language or category.
func (service *Service) ListAll(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	return service.repo.ListEntries(ctx, Filter{}, limit, offset)
}

// ListByCategory lists public entries of a category and its direct children.
func (service *Service) ListByCategory(ctx context.Context, categorySlug, language string, limit, offset int) (*Category, []*Entry, int, error) {
	category, err := service.repo.GetCategoryBySlug(ctx, categorySlug)
	if err != nil {
		return nil, nil, 0, err
	}

	entries, total, err := service.repo.ListEntries(ctx, Filter{
		Language:      language,
		PublishedOnly: true,
		Now:           service.settings.Now(),
		CategorySlug:  category.Slug,
	}, limit, offset)
	if err != nil {
		return nil, nil, 0, err
	}

	return category, entries, total, nil
}

// Recent returns the newest public entries. A non-positive count means
// [DefaultRecent].
func (service *Service) Recent(ctx context.Context, recent RecentQuery) ([]*Entry, error) {
	if recent.Count <= 0 {
		recent.Count = DefaultRecent
	}
	if err := (&validate.Validator{}).Range(FieldCount, recent.Count, 1, MaxRecent).Err(); err != nil {
		return nil, err
	}

	filter := Filter{
		PublishedOnly: true,
		Now:           service.settings.Now(),
		CategorySlug:  recent.Category,
		AuthorID:      recent.AuthorID,
	}
	if !recent.AnyLanguage {
		filter.Language = recent.Language
	}

	entries, _, err := service.repo.ListEntries(ctx, filter, recent.Count, 0)
	return entries, err
}

// GetBySlug finds an entry by the slug of its translation in language.
// Without preview, only public translations are found.
func (service *Service) GetBySlug(ctx context.Context, language, entrySlug string, preview bool) (*Entry, error) {
	entry, err := service.repo.GetEntryBySlug(ctx, language, entrySlug)
	if err != nil {
		return nil, err
	}
	if !preview && !entry.IsPublic(language, service.settings.Now()) {
		return nil, apperr.NotFound("Entry")
	}
	return entry, nil
}

// GetByDate finds a public entry by slug and the calendar day (UTC) of its
// publication date.
func (service *Service) GetByDate(ctx context.Context, language string, year, month, day int, entrySlug string) (*Entry, error) {
	entry, err := service.GetBySlug(ctx, language, entrySlug, false)
	if err != nil {
		return nil, err
	}

	if entry.PubDate == nil {
		return nil, apperr.NotFound("Entry")
	}
	date := entry.PubDate.UTC()
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return nil, apperr.NotFound("Entry")
	}
	return entry, nil
}

// GetEntry loads an entry by id regardless of its publication state.
func (service *Service) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	return service.repo.GetEntry(ctx, id)
}

// Categories lists every category.
func (service *Service) Categories(ctx context.Context) ([]*Category, error) {
	return service.repo.ListCategories(ctx)
}

// AuthorName resolves the display name of an author with at least one entry.
func (service *Service) AuthorName(ctx context.Context, authorID string) (string, error) {
	return service.repo.AuthorName(ctx, authorID)
}

// # Writing

// Create stores a new entry written by the given author.
func (service *Service) Create(ctx context.Context, input EntryInput, authorID, authorName string) (*Entry, error) {
	entry, err := service.build(input)
	if err != nil {
		return nil, err
	}

	if authorID != "" {
		entry.AuthorID = &authorID
	}
	entry.AuthorName = authorName

	if err := service.repo.CreateEntry(ctx, entry, input.CategoryIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "entry_created", slog.Int64("entry_id", entry.ID), slog.Int("translations", len(entry.Translations)))
	return entry, nil
}

// Update replaces the writable fields of an entry.
func (service *Service) Update(ctx context.Context, id int64, input EntryInput) (*Entry, error) {
	entry, err := service.build(input)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	if err := service.repo.UpdateEntry(ctx, entry, input.CategoryIDs); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "entry_updated", slog.Int64("entry_id", id))
	return entry, nil
}

// Delete removes an entry with all its translations.
func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.DeleteEntry(ctx, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "entry_deleted", slog.Int64("entry_id", id))
	return nil
}

// SetPublished applies a publish or unpublish action to the translation in
// language, or to every translation when language is empty.
func (service *Service) SetPublished(ctx context.Context, id int64, action, language string) (*Entry, error) {
	validator := (&validate.Validator{}).OneOf(FieldAction, action, ActionPublish, ActionUnpublish)
	if language != "" {
		validator.Language(FieldLanguage, language, service.settings.Languages)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.SetPublished(ctx, id, language, action == ActionPublish); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "entry_publication_changed",
		slog.Int64("entry_id", id),
		slog.String("action", action),
		slog.String("language", language),
	)
	return service.repo.GetEntry(ctx, id)
}

// build validates input and turns it into an entry, deriving missing slugs.
func (service *Service) build(input EntryInput) (*Entry, error) {
	validator := &validate.Validator{}

	validator.Custom(FieldTranslations, len(input.Translations) == 0, "At least one translation is required")
	if input.ImageURL != nil {
		validator.URL(FieldImageURL, *input.ImageURL)
	}

	entry := &Entry{
		PubDate:      input.PubDate,
		ImageURL:     input.ImageURL,
		Translations: make([]Translation, 0, len(input.Translations)),
	}

	seen := make(map[string]bool, len(input.Translations))
	for _, translation := range input.Translations {
		validator.Language(FieldLanguage, translation.Language, service.settings.Languages)
		validator.Custom(FieldLanguage, seen[translation.Language], "Only one translation per language")
		seen[translation.Language] = true

		validator.Required(FieldTitle, translation.Title).MaxLen(FieldTitle, translation.Title, TitleMaxLength)

		entrySlug := translation.Slug
		if entrySlug == "" {
			entrySlug = service.DeriveSlug(translation.Title)
		}
		validator.Slug(FieldSlug, entrySlug).MaxLen(FieldSlug, entrySlug, SlugColumnLength)

		entry.Translations = append(entry.Translations, Translation{
			Language:    translation.Language,
			Title:       translation.Title,
			Slug:        entrySlug,
			IsPublished: translation.IsPublished,
		})
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}
	return entry, nil
}
