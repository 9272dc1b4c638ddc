package schema

// NewsEntryTable represents the 'news.entry' table
type NewsEntryTable struct {
	Table      string
	ID         string
	AuthorID   string
	AuthorName string
	PubDate    string
	ImageURL   string
	CreatedAt  string
	UpdatedAt  string
}

// NewsEntry is the schema definition for news.entry
var NewsEntry = NewsEntryTable{
	Table:      "news.entry",
	ID:         "id",
	AuthorID:   "authorid",
	AuthorName: "authorname",
	PubDate:    "pubdate",
	ImageURL:   "imageurl",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// Columns lists the selectable columns, qualified with alias.
func (t NewsEntryTable) Columns(alias string) []string {
	return qualify(alias, t.ID, t.AuthorID, t.AuthorName, t.PubDate, t.ImageURL, t.CreatedAt, t.UpdatedAt)
}
