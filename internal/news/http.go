// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
	"github.com/taibuivan/newsdesk/internal/platform/middleware"
	requestutil "github.com/taibuivan/newsdesk/internal/platform/request"
	"github.com/taibuivan/newsdesk/internal/platform/respond"
	"github.com/taibuivan/newsdesk/internal/platform/sec"
	"github.com/taibuivan/newsdesk/internal/platform/validate"
	"github.com/taibuivan/newsdesk/pkg/pagination"
	"github.com/taibuivan/newsdesk/pkg/slice"
)

// HandlerSettings configures the public handlers.
type HandlerSettings struct {
	PageSize int

	// SiteName and BaseURL appear in feeds.
	SiteName string
	BaseURL  string
}

// Handler serves the public news API and feeds.
type Handler struct {
	service  *Service
	settings HandlerSettings
}

// NewHandler creates the news HTTP handler.
func NewHandler(service *Service, settings HandlerSettings) *Handler {
	return &Handler{service: service, settings: settings}
}

// Summary is the reader-facing shape of an entry in one language.
type Summary struct {
	ID           int64         `json:"id"`
	Language     string        `json:"language"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	URL          string        `json:"url"`
	IsPublished  bool          `json:"is_published"`
	PubDate      *time.Time    `json:"pub_date"`
	ImageURL     *string       `json:"image_url"`
	AuthorName   string        `json:"author_name,omitempty"`
	Categories   []Category    `json:"categories"`
	Translations []Translation `json:"translations,omitempty"`
}

// Summarize renders entry in its preferred translation for language.
func Summarize(entry *Entry, language, fallback string) Summary {
	summary := Summary{
		ID:         entry.ID,
		URL:        entry.AbsoluteURL(language, fallback),
		PubDate:    entry.PubDate,
		ImageURL:   entry.ImageURL,
		AuthorName: entry.AuthorName,
		Categories: entry.Categories,
	}
	if translation := entry.PreferredTranslation(language, fallback); translation != nil {
		summary.Language = translation.Language
		summary.Title = translation.Title
		summary.Slug = translation.Slug
		summary.IsPublished = translation.IsPublished
	}
	return summary
}

// Routes mounts the news endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/", handler.list)
	router.Get("/category/{category}", handler.listCategory)
	router.Get("/get-entries", handler.getEntries)

	// Feeds
	router.Get("/rss", handler.feed(false))
	router.Get("/rss/any", handler.feed(true))
	router.Get("/rss/author/{author}", handler.feed(false))
	router.Get("/rss/any/author/{author}", handler.feed(true))

	// Staff
	router.With(middleware.RequireRole(sec.RoleEditor)).Get("/preview/{slug}", handler.preview)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Post("/{id}/publish", handler.publish)

	// Details
	router.Get("/{year}/{month}/{day}/{slug}", handler.getByDate)
	router.Get("/{slug}", handler.getBySlug)

	return router
}

func (handler *Handler) language(request *http.Request) string {
	return ctxutil.GetLanguage(request.Context(), handler.service.DefaultLanguage())
}

func (handler *Handler) summaries(request *http.Request, entries []*Entry) []Summary {
	language := handler.language(request)
	return slice.Map(entries, func(entry *Entry) Summary {
		return Summarize(entry, language, handler.service.DefaultLanguage())
	})
}

func (handler *Handler) detail(request *http.Request, entry *Entry) Summary {
	summary := Summarize(entry, handler.language(request), handler.service.DefaultLanguage())
	summary.Translations = entry.Translations
	return summary
}

// # Lists

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request, handler.settings.PageSize)
	isAdmin := ctxutil.HasRole(request.Context(), sec.RoleAdmin)

	entries, total, err := handler.service.ListPublished(request.Context(), handler.language(request), isAdmin, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, handler.summaries(request, entries), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) listCategory(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request, handler.settings.PageSize)

	_, entries, total, err := handler.service.ListByCategory(request.Context(),
		requestutil.Param(request, "category"), handler.language(request), page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, handler.summaries(request, entries), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getEntries(writer http.ResponseWriter, request *http.Request) {
	recent := RecentQuery{
		Language: handler.language(request),
		Category: request.URL.Query().Get("category"),
	}

	if raw := request.URL.Query().Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 {
			respond.Error(writer, request, validate.RequiredError(FieldCount, "Must be a positive number"))
			return
		}
		recent.Count = count
	}

	entries, err := handler.service.Recent(request.Context(), recent)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.summaries(request, entries))
}

// # Details

func (handler *Handler) getBySlug(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetBySlug(request.Context(), handler.language(request), requestutil.Param(request, "slug"), false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.detail(request, entry))
}

func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	entry, err := handler.service.GetBySlug(request.Context(), handler.language(request), requestutil.Param(request, "slug"), true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.detail(request, entry))
}

func (handler *Handler) getByDate(writer http.ResponseWriter, request *http.Request) {
	var date [3]int
	for i, name := range []string{"year", "month", "day"} {
		value, err := requestutil.IntParam(request, name)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		date[i] = value
	}

	entry, err := handler.service.GetByDate(request.Context(), handler.language(request),
		date[0], date[1], date[2], requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.detail(request, entry))
}

// # Publication

type publishRequest struct {
	Action   string `json:"action"`
	Language string `json:"language"`
}

func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id", "Entry")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input publishRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.SetPublished(request.Context(), id, input.Action, input.Language)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.detail(request, entry))
}
