// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin serves the server-rendered news admin pages.

The pages are plain HTML forms that work without scripting. Two hooks are
left for the admin UI controllers (see internal/ui):

  - delete links carry data-class="toggleDeleteModal"; the confirmation they
    point to renders as a bare fragment when requested with
    X-Requested-With: XMLHttpRequest, with a cancel link marked
    data-id="entryDeleteCancel".
  - the entry form exposes the title and slug inputs as id_title and id_slug.
*/
package admin

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/newsdesk/internal/news"
	"github.com/taibuivan/newsdesk/internal/platform/ctxutil"
	"github.com/taibuivan/newsdesk/internal/platform/middleware"
	requestutil "github.com/taibuivan/newsdesk/internal/platform/request"
	"github.com/taibuivan/newsdesk/internal/platform/respond"
	"github.com/taibuivan/newsdesk/internal/platform/sec"
	"github.com/taibuivan/newsdesk/pkg/pagination"
	"github.com/taibuivan/newsdesk/pkg/slice"
	"github.com/taibuivan/newsdesk/pkg/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	listPage       = parsePage("templates/list.html")
	formPage       = parsePage("templates/form.html")
	deletePage     = parsePage("templates/delete.html", "templates/confirm.html")
	confirmPartial = template.Must(template.ParseFS(templateFS, "templates/confirm.html"))
)

func parsePage(files ...string) *template.Template {
	return template.Must(template.ParseFS(templateFS, append([]string{"templates/layout.html"}, files...)...))
}

// Settings configures the admin pages.
type Settings struct {
	// BasePath is where [Handler.Routes] is mounted, without a trailing slash.
	BasePath string
	SiteName string
	PageSize int

	// SlugMaxLength is the maxlength of the slug input.
	SlugMaxLength int
}

// Handler serves the admin pages.
type Handler struct {
	service  *news.Service
	settings Settings
}

// NewHandler creates the admin handler.
func NewHandler(service *news.Service, settings Settings) *Handler {
	if settings.SlugMaxLength == 0 {
		settings.SlugMaxLength = slug.DefaultMaxLength
	}
	return &Handler{service: service, settings: settings}
}

// Routes mounts the admin pages. Every page requires at least the editor role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRolePage(sec.RoleEditor))

	router.Get("/", handler.list)
	router.Get("/slug", handler.slugPreview)

	router.Get("/new", handler.newForm)
	router.Post("/new", handler.create)

	router.Get("/{id}/edit", handler.editForm)
	router.Post("/{id}/edit", handler.update)

	router.Get("/{id}/delete", handler.confirmDelete)
	router.Post("/{id}/delete", handler.delete)

	return router
}

// # Views

// view is the data every page template receives.
type view struct {
	SiteName string
	BasePath string
	Language string
	Title    string
	Content  any
}

type listRow struct {
	ID          int64
	Title       string
	Language    string
	PubDate     *time.Time
	IsPublished bool
}

type listContent struct {
	Rows []listRow
	Page *pagination.Meta
}

type formContent struct {
	Action         string
	Form           entryForm
	Errors         fieldErrors
	Languages      []string
	Categories     []*news.Category
	Selected       map[int64]bool
	TitleMaxLength int
	SlugMaxLength  int
}

type confirmContent struct {
	Title     string
	Action    string
	CancelURL string
}

// deleteResult answers an asynchronous delete.
type deleteResult struct {
	Deleted     bool   `json:"deleted"`
	RedirectURL string `json:"redirect_url"`
}

type slugResult struct {
	Slug string `json:"slug"`
}

func (handler *Handler) language(request *http.Request) string {
	return ctxutil.GetLanguage(request.Context(), handler.service.DefaultLanguage())
}

func (handler *Handler) view(request *http.Request, title string, content any) view {
	return view{
		SiteName: handler.settings.SiteName,
		BasePath: handler.settings.BasePath,
		Language: handler.language(request),
		Title:    title,
		Content:  content,
	}
}

func (handler *Handler) listURL() string {
	return handler.settings.BasePath + "/"
}

// # List

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request, handler.settings.PageSize)

	entries, total, err := handler.service.ListAll(request.Context(), page.Limit, page.Offset())
	if err != nil {
		respond.HTMLError(writer, request, err)
		return
	}

	language := handler.language(request)
	content := listContent{
		Rows: slice.Map(entries, func(entry *news.Entry) listRow {
			row := listRow{ID: entry.ID, PubDate: entry.PubDate}
			if translation := entry.PreferredTranslation(language, handler.service.DefaultLanguage()); translation != nil {
				row.Title = translation.Title
				row.Language = translation.Language
				row.IsPublished = translation.IsPublished
			}
			return row
		}),
	}
	if meta := pagination.NewMeta(page.Page, page.Limit, total); meta.TotalPages > 1 {
		content.Page = &meta
	}

	respond.HTML(writer, request, http.StatusOK, listPage, "layout", handler.view(request, "News entries", content))
}

// # Create and edit

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, title, action string, form entryForm, errs fieldErrors) {
	categories, err := handler.service.Categories(request.Context())
	if err != nil {
		respond.HTMLError(writer, request, err)
		return
	}

	respond.HTML(writer, request, status, formPage, "layout", handler.view(request, title, formContent{
		Action:         action,
		Form:           form,
		Errors:         errs,
		Languages:      handler.service.Languages(),
		Categories:     categories,
		Selected:       form.selected(),
		TitleMaxLength: news.TitleMaxLength,
		SlugMaxLength:  handler.settings.SlugMaxLength,
	}))
}

func (handler *Handler) newForm(writer http.ResponseWriter, request *http.Request) {
	form := entryForm{Language: handler.language(request)}
	handler.renderForm(writer, request, http.StatusOK, "Add news entry", handler.settings.BasePath+"/new", form, nil)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	const title = "Add news entry"
	action := handler.settings.BasePath + "/new"

	form, errs, err := parseForm(request)
	if err != nil {
		respond.HTMLError(writer, request, err)
		return
	}
	if len(errs) > 0 {
		handler.renderForm(writer, request, http.StatusBadRequest, title, action, form, errs)
		return
	}

	var authorID, authorName string
	if claims := requestutil.Claims(request); claims != nil {
		authorID, authorName = claims.UserID, claims.Username
	}

	if _, err := handler.service.Create(request.Context(), form.input(nil), authorID, authorName); err != nil {
		if errs, ok := errorsFrom(err); ok {
			handler.renderForm(writer, request, http.StatusBadRequest, title, action, form, errs)
			return
		}
		respond.HTMLError(writer, request, err)
		return
	}

	http.Redirect(writer, request, handler.listURL(), http.StatusSeeOther)
}

func (handler *Handler) editForm(writer http.ResponseWriter, request *http.Request) {
	entry, ok := handler.loadEntry(writer, request)
	if !ok {
		return
	}

	language := request.URL.Query().Get(news.FieldLanguage)
	if language == "" {
		language = handler.language(request)
	}

	handler.renderForm(writer, request, http.StatusOK, "Change news entry", editURL(handler.settings.BasePath, entry.ID), formFromEntry(entry, language), nil)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	const title = "Change news entry"

	entry, ok := handler.loadEntry(writer, request)
	if !ok {
		return
	}
	action := editURL(handler.settings.BasePath, entry.ID)

	form, errs, err := parseForm(request)
	if err != nil {
		respond.HTMLError(writer, request, err)
		return
	}
	if len(errs) > 0 {
		handler.renderForm(writer, request, http.StatusBadRequest, title, action, form, errs)
		return
	}

	if _, err := handler.service.Update(request.Context(), entry.ID, form.input(entry.Translations)); err != nil {
		if errs, ok := errorsFrom(err); ok {
			handler.renderForm(writer, request, http.StatusBadRequest, title, action, form, errs)
			return
		}
		respond.HTMLError(writer, request, err)
		return
	}

	http.Redirect(writer, request, handler.listURL(), http.StatusSeeOther)
}

// # Delete

func (handler *Handler) confirmDelete(writer http.ResponseWriter, request *http.Request) {
	entry, ok := handler.loadEntry(writer, request)
	if !ok {
		return
	}

	content := confirmContent{
		Action:    deleteURL(handler.settings.BasePath, entry.ID),
		CancelURL: handler.listURL(),
	}
	if translation := entry.PreferredTranslation(handler.language(request), handler.service.DefaultLanguage()); translation != nil {
		content.Title = translation.Title
	}

	if requestutil.IsXHR(request) {
		respond.HTML(writer, request, http.StatusOK, confirmPartial, "confirm", content)
		return
	}
	respond.HTML(writer, request, http.StatusOK, deletePage, "layout", handler.view(request, "Delete news entry", content))
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	fail := respond.HTMLError
	if requestutil.IsXHR(request) {
		fail = respond.Error
	}

	id, err := requestutil.Int64Param(request, "id", "Entry")
	if err != nil {
		fail(writer, request, err)
		return
	}
	if err := handler.service.Delete(request.Context(), id); err != nil {
		fail(writer, request, err)
		return
	}

	if requestutil.IsXHR(request) {
		respond.JSON(writer, http.StatusOK, deleteResult{Deleted: true, RedirectURL: handler.listURL()})
		return
	}
	http.Redirect(writer, request, handler.listURL(), http.StatusSeeOther)
}

// # Slug preview

// slugPreview derives the slug the service would store for ?title=.
func (handler *Handler) slugPreview(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, slugResult{Slug: handler.service.DeriveSlug(request.URL.Query().Get(news.FieldTitle))})
}

// # Helpers

func (handler *Handler) loadEntry(writer http.ResponseWriter, request *http.Request) (*news.Entry, bool) {
	id, err := requestutil.Int64Param(request, "id", "Entry")
	if err != nil {
		respond.HTMLError(writer, request, err)
		return nil, false
	}

	entry, err := handler.service.GetEntry(request.Context(), id)
	if err != nil {
		respond.HTMLError(writer, request, err)
		return nil, false
	}
	return entry, true
}

func editURL(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10) + "/edit"
}

func deleteURL(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10) + "/delete"
}
