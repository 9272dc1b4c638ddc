package schema

// NewsEntryTitleTable represents the 'news.entrytitle' table
type NewsEntryTitleTable struct {
	Table       string
	EntryID     string
	Language    string
	Title       string
	Slug        string
	IsPublished string
}

// NewsEntryTitle is the schema definition for news.entrytitle
var NewsEntryTitle = NewsEntryTitleTable{
	Table:       "news.entrytitle",
	EntryID:     "entryid",
	Language:    "language",
	Title:       "title",
	Slug:        "slug",
	IsPublished: "ispublished",
}
