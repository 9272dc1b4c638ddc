// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/newsdesk/internal/news"
	"github.com/taibuivan/newsdesk/internal/platform/apperr"
	"github.com/taibuivan/newsdesk/pkg/pointer"
)

// dateLayout is the wire format of datetime-local inputs.
const dateLayout = "2006-01-02T15:04"

// Form field names beyond the translation fields declared by news.
const (
	fieldPubDate     = "pub_date"
	fieldIsPublished = "is_published"
	fieldCategory    = "category"
)

// entryForm is the editable state of one translation plus the entry-wide fields.
// Dates and ids stay as submitted so an invalid form re-renders unchanged.
type entryForm struct {
	Language    string
	Title       string
	Slug        string
	PubDate     string
	ImageURL    string
	IsPublished bool
	CategoryIDs []int64
}

// fieldErrors maps a form field to the first message reported for it.
type fieldErrors map[string]string

func (errs fieldErrors) add(field, message string) {
	if _, ok := errs[field]; !ok {
		errs[field] = message
	}
}

// formFromEntry fills the form from the translation of entry in language.
func formFromEntry(entry *news.Entry, language string) entryForm {
	form := entryForm{
		Language:    language,
		ImageURL:    pointer.Val(entry.ImageURL),
		CategoryIDs: make([]int64, 0, len(entry.Categories)),
	}
	if entry.PubDate != nil {
		form.PubDate = entry.PubDate.UTC().Format(dateLayout)
	}
	if translation, ok := entry.Translation(language); ok {
		form.Title = translation.Title
		form.Slug = translation.Slug
		form.IsPublished = translation.IsPublished
	}
	for _, category := range entry.Categories {
		form.CategoryIDs = append(form.CategoryIDs, category.ID)
	}
	return form
}

// parseForm reads a submitted entry form. Values that cannot be parsed are
// reported in errs; the rest of the form is still returned.
func parseForm(request *http.Request) (entryForm, fieldErrors, error) {
	if err := request.ParseForm(); err != nil {
		return entryForm{}, nil, apperr.ValidationError("Malformed form submission")
	}

	form := entryForm{
		Language:    strings.TrimSpace(request.PostForm.Get(news.FieldLanguage)),
		Title:       strings.TrimSpace(request.PostForm.Get(news.FieldTitle)),
		Slug:        strings.TrimSpace(request.PostForm.Get(news.FieldSlug)),
		PubDate:     strings.TrimSpace(request.PostForm.Get(fieldPubDate)),
		ImageURL:    strings.TrimSpace(request.PostForm.Get(news.FieldImageURL)),
		IsPublished: request.PostForm.Get(fieldIsPublished) != "",
	}

	errs := fieldErrors{}
	for _, raw := range request.PostForm[fieldCategory] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			errs.add(fieldCategory, "Select a valid category")
			continue
		}
		form.CategoryIDs = append(form.CategoryIDs, id)
	}
	if form.PubDate != "" {
		if _, err := time.Parse(dateLayout, form.PubDate); err != nil {
			errs.add(fieldPubDate, "Enter a valid date and time")
		}
	}

	return form, errs, nil
}

// translation is the submitted translation.
func (form entryForm) translation() news.TranslationInput {
	return news.TranslationInput{
		Language:    form.Language,
		Title:       form.Title,
		Slug:        form.Slug,
		IsPublished: form.IsPublished,
	}
}

// input builds the entry input. others are the translations in the other
// languages, kept as they are.
func (form entryForm) input(others []news.Translation) news.EntryInput {
	input := news.EntryInput{
		ImageURL:     pointer.NonZero(form.ImageURL),
		CategoryIDs:  form.CategoryIDs,
		Translations: make([]news.TranslationInput, 0, len(others)+1),
	}
	if date, err := time.Parse(dateLayout, form.PubDate); err == nil {
		input.PubDate = &date
	}

	for _, translation := range others {
		if translation.Language == form.Language {
			continue
		}
		input.Translations = append(input.Translations, news.TranslationInput{
			Language:    translation.Language,
			Title:       translation.Title,
			Slug:        translation.Slug,
			IsPublished: translation.IsPublished,
		})
	}
	input.Translations = append(input.Translations, form.translation())

	return input
}

// selected indexes the chosen categories for the template.
func (form entryForm) selected() map[int64]bool {
	selected := make(map[int64]bool, len(form.CategoryIDs))
	for _, id := range form.CategoryIDs {
		selected[id] = true
	}
	return selected
}

// errorsFrom turns a validation error from the news service into form errors.
// It reports false for any other error.
func errorsFrom(err error) (fieldErrors, bool) {
	appError := apperr.As(err)
	if appError == nil {
		return nil, false
	}

	errs := fieldErrors{}
	switch appError.Code {
	case "VALIDATION_ERROR":
		for _, detail := range appError.Details {
			errs.add(detail.Field, detail.Message)
		}
		if len(errs) == 0 {
			errs.add(news.FieldTitle, appError.Message)
		}
	case "CONFLICT":
		errs.add(news.FieldSlug, "An entry with this slug already exists in this language")
	default:
		return nil, false
	}
	return errs, true
}
