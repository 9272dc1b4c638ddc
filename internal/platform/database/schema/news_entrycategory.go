package schema

// NewsEntryCategoryTable represents the 'news.entrycategory' join table
type NewsEntryCategoryTable struct {
	Table      string
	EntryID    string
	CategoryID string
}

// NewsEntryCategory is the schema definition for news.entrycategory
var NewsEntryCategory = NewsEntryCategoryTable{
	Table:      "news.entrycategory",
	EntryID:    "entryid",
	CategoryID: "categoryid",
}
