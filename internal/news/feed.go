// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package news

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	requestutil "github.com/taibuivan/newsdesk/internal/platform/request"
	"github.com/taibuivan/newsdesk/internal/platform/respond"
)

// # RSS 2.0 Document

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Self          rssLink   `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type rssLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate,omitempty"`
}

// FeedTitle names a feed: "<site> blog entries[ in <language>][ by <author>]".
func FeedTitle(siteName, languageCode, authorName string) string {
	title := siteName + " blog entries"
	if languageCode != "" {
		title += " in " + display.English.Languages().Name(language.Make(languageCode))
	}
	if authorName != "" {
		title += " by " + authorName
	}
	return title
}

// feed serves the newest public entries as RSS. anyLanguage drops the
// language filter; an {author} route parameter narrows to one author.
func (handler *Handler) feed(anyLanguage bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		currentLanguage := handler.language(request)
		authorID := requestutil.Param(request, "author")

		var authorName string
		if authorID != "" {
			name, err := handler.service.AuthorName(ctx, authorID)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			authorName = name
		}

		entries, err := handler.service.Recent(ctx, RecentQuery{
			Language:    currentLanguage,
			AnyLanguage: anyLanguage,
			AuthorID:    authorID,
			Count:       DefaultRecent,
		})
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		titleLanguage := currentLanguage
		if anyLanguage {
			titleLanguage = ""
		}
		title := FeedTitle(handler.settings.SiteName, titleLanguage, authorName)
		base := strings.TrimRight(handler.settings.BaseURL, "/")

		channel := rssChannel{
			Title:       title,
			Link:        base + "/news/",
			Description: title,
			Language:    titleLanguage,
			Self:        rssLink{Href: base + request.URL.Path, Rel: "self", Type: "application/rss+xml"},
			Items:       make([]rssItem, 0, len(entries)),
		}

		var newest time.Time
		for _, entry := range entries {
			summary := Summarize(entry, currentLanguage, handler.service.DefaultLanguage())
			published := entry.CreatedAt
			if entry.PubDate != nil {
				published = *entry.PubDate
			}
			if published.After(newest) {
				newest = published
			}

			channel.Items = append(channel.Items, rssItem{
				Title:       summary.Title,
				Link:        base + summary.URL,
				Description: summary.Title,
				GUID:        base + summary.URL,
				PubDate:     published.UTC().Format(time.RFC1123Z),
			})
		}
		if !newest.IsZero() {
			channel.LastBuildDate = newest.UTC().Format(time.RFC1123Z)
		}

		body, err := xml.MarshalIndent(rssDocument{Version: "2.0", Atom: "http://www.w3.org/2005/Atom", Channel: channel}, "", "  ")
		if err != nil {
			respond.Error(writer, request, fmt.Errorf("news: encode feed: %w", err))
			return
		}

		writer.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		writer.WriteHeader(http.StatusOK)
		_, _ = writer.Write([]byte(xml.Header))
		_, _ = writer.Write(body)
	}
}
