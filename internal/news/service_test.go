// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/newsdesk/internal/news"
	"github.com/taibuivan/newsdesk/internal/news/newstest"
	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/pkg/pointer"
	"github.com/taibuivan/newsdesk/pkg/slug"
)

var clock = time.Date(2026, time.June, 10, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newService(repo news.Repository) *news.Service {
	return news.NewService(repo, news.Settings{
		Languages:       []string{"en", "de"},
		DefaultLanguage: "en",
		Slugs:           slug.NewDeriver(slug.Unidecode, 64),
		Now:             func() time.Time { return clock },
	}, discardLogger())
}

func published(language, title string) news.TranslationInput {
	return news.TranslationInput{Language: language, Title: title, IsPublished: true}
}

/*
TestService_Create derives missing slugs and validates input.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	entry, err := service.Create(ctx, news.EntryInput{
		Translations: []news.TranslationInput{
			published("en", "Café Münchën opens"),
			{Language: "de", Title: "Eröffnung", Slug: "eroeffnung"},
		},
	}, "u-1", "Ada")
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, "Ada", entry.AuthorName)
	assert.Equal(t, "cafe-munchen-opens", entry.Translations[0].Slug)
	assert.Equal(t, "eroeffnung", entry.Translations[1].Slug)

	tests := []struct {
		name  string
		input news.EntryInput
		field string
	}{
		{"no_translations", news.EntryInput{}, news.FieldTranslations},
		{"empty_title", news.EntryInput{Translations: []news.TranslationInput{{Language: "en", Title: "  "}}}, news.FieldTitle},
		{"unknown_language", news.EntryInput{Translations: []news.TranslationInput{published("fr", "Bonjour")}}, news.FieldLanguage},
		{"duplicate_language", news.EntryInput{Translations: []news.TranslationInput{published("en", "A"), published("en", "B")}}, news.FieldLanguage},
		{"bad_slug", news.EntryInput{Translations: []news.TranslationInput{{Language: "en", Title: "Fine", Slug: "Not A Slug"}}}, news.FieldSlug},
		{"underivable_slug", news.EntryInput{Translations: []news.TranslationInput{published("en", "!!!")}}, news.FieldSlug},
		{"bad_image", news.EntryInput{ImageURL: pointer.To("not a url"), Translations: []news.TranslationInput{published("en", "Fine")}}, news.FieldImageURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.input, "u-1", "Ada")

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
			assert.Equal(t, tt.field, appError.Details[0].Field)
		})
	}
}

/*
TestService_Create_DuplicateSlug reports a conflict for a reused (language, slug).
*/
func TestService_Create_DuplicateSlug(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	_, err := service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "Same title")}}, "", "")
	require.NoError(t, err)

	_, err = service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "Same title")}}, "", "")
	assert.True(t, apperr.HasCode(err, "CONFLICT"))

	_, err = service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("de", "Same title")}}, "", "")
	assert.NoError(t, err, "slugs are unique per language")
}

/*
TestService_ListPublished applies publication, language and hidden-category rules.
*/
func TestService_ListPublished(t *testing.T) {
	ctx := context.Background()
	repo := newstest.NewRepository()
	service := newService(repo)
	hidden := repo.AddCategory("Internal", "internal", nil, true)

	create := func(input news.EntryInput) {
		t.Helper()
		_, err := service.Create(ctx, input, "u-1", "Ada")
		require.NoError(t, err)
	}

	create(news.EntryInput{Translations: []news.TranslationInput{published("en", "Visible")}})
	create(news.EntryInput{Translations: []news.TranslationInput{{Language: "en", Title: "Draft"}}})
	create(news.EntryInput{PubDate: pointer.To(clock.Add(time.Hour)), Translations: []news.TranslationInput{published("en", "Scheduled")}})
	create(news.EntryInput{Translations: []news.TranslationInput{published("de", "Nur Deutsch")}})
	create(news.EntryInput{CategoryIDs: []int64{hidden.ID}, Translations: []news.TranslationInput{published("en", "Hidden")}})

	entries, total, err := service.ListPublished(ctx, "en", false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Visible", entries[0].Translations[0].Title)

	_, total, err = service.ListPublished(ctx, "de", false, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, total, err = service.ListPublished(ctx, "en", true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, total, "admins see drafts and every language, never hidden categories")
}

/*
TestService_ListByCategory includes direct children and rejects unknown categories.
*/
func TestService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	repo := newstest.NewRepository()
	service := newService(repo)

	parent := repo.AddCategory("Company", "company", nil, false)
	child := repo.AddCategory("Releases", "releases", &parent.ID, false)
	other := repo.AddCategory("Events", "events", nil, false)

	for title, categoryID := range map[string]int64{"Parent post": parent.ID, "Child post": child.ID, "Other post": other.ID} {
		_, err := service.Create(ctx, news.EntryInput{CategoryIDs: []int64{categoryID}, Translations: []news.TranslationInput{published("en", title)}}, "", "")
		require.NoError(t, err)
	}

	category, entries, total, err := service.ListByCategory(ctx, "company", "en", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, "Company", category.Name)
	assert.Equal(t, 2, total)
	assert.Len(t, entries, 2)

	_, _, _, err = service.ListByCategory(ctx, "missing", "en", 10, 0)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestService_Recent caps the count and filters by author and language.
*/
func TestService_Recent(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	for i, author := range []string{"u-1", "u-1", "u-2"} {
		_, err := service.Create(ctx, news.EntryInput{
			PubDate:      pointer.To(clock.Add(-time.Duration(i) * time.Hour)),
			Translations: []news.TranslationInput{published("en", "Post "+string(rune('A'+i)))},
		}, author, author)
		require.NoError(t, err)
	}

	entries, err := service.Recent(ctx, news.RecentQuery{Language: "en", Count: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Post A", entries[0].Translations[0].Title, "newest first")

	entries, err = service.Recent(ctx, news.RecentQuery{AnyLanguage: true, AuthorID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = service.Recent(ctx, news.RecentQuery{Language: "de"})
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = service.Recent(ctx, news.RecentQuery{Count: news.MaxRecent + 1})
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
}

/*
TestService_GetBySlug hides unpublished entries outside preview.
*/
func TestService_GetBySlug(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	_, err := service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{{Language: "en", Title: "Secret draft"}}}, "", "")
	require.NoError(t, err)

	_, err = service.GetBySlug(ctx, "en", "secret-draft", false)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	entry, err := service.GetBySlug(ctx, "en", "secret-draft", true)
	require.NoError(t, err)
	assert.Equal(t, "Secret draft", entry.Translations[0].Title)
}

/*
TestService_GetByDate matches the calendar day of the publication date.
*/
func TestService_GetByDate(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	pubDate := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	_, err := service.Create(ctx, news.EntryInput{PubDate: &pubDate, Translations: []news.TranslationInput{published("en", "Dated")}}, "", "")
	require.NoError(t, err)
	_, err = service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "Undated")}}, "", "")
	require.NoError(t, err)

	entry, err := service.GetByDate(ctx, "en", 2026, 6, 1, "dated")
	require.NoError(t, err)
	assert.Equal(t, "/news/2026/06/01/dated/", entry.AbsoluteURL("en", "en"))

	_, err = service.GetByDate(ctx, "en", 2026, 6, 2, "dated")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	_, err = service.GetByDate(ctx, "en", 2026, 6, 1, "undated")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestService_SetPublished publishes one language or all of them.
*/
func TestService_SetPublished(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	entry, err := service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{
		{Language: "en", Title: "Draft"},
		{Language: "de", Title: "Entwurf"},
	}}, "", "")
	require.NoError(t, err)

	updated, err := service.SetPublished(ctx, entry.ID, news.ActionPublish, "de")
	require.NoError(t, err)
	assert.True(t, updated.IsPublic("de", clock))
	assert.False(t, updated.IsPublic("en", clock))

	updated, err = service.SetPublished(ctx, entry.ID, news.ActionPublish, "")
	require.NoError(t, err)
	assert.True(t, updated.IsPublic("en", clock))

	updated, err = service.SetPublished(ctx, entry.ID, news.ActionUnpublish, "")
	require.NoError(t, err)
	assert.False(t, updated.IsPublic("de", clock))

	_, err = service.SetPublished(ctx, entry.ID, "archive", "")
	assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))

	_, err = service.SetPublished(ctx, 999, news.ActionPublish, "")
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))
}

/*
TestService_UpdateDelete keeps the author and removes entries.
*/
func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	service := newService(newstest.NewRepository())

	entry, err := service.Create(ctx, news.EntryInput{Translations: []news.TranslationInput{published("en", "Before")}}, "u-1", "Ada")
	require.NoError(t, err)

	updated, err := service.Update(ctx, entry.ID, news.EntryInput{Translations: []news.TranslationInput{published("en", "After")}})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Translations[0].Slug)
	assert.Equal(t, "Ada", updated.AuthorName)

	require.NoError(t, service.Delete(ctx, entry.ID))
	_, err = service.GetEntry(ctx, entry.ID)
	assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

	assert.True(t, apperr.HasCode(service.Delete(ctx, entry.ID), "NOT_FOUND"))
}
