package schema

// NewsCategoryTable represents the 'news.category' table
type NewsCategoryTable struct {
	Table      string
	ID         string
	Name       string
	Slug       string
	ParentID   string
	HideOnList string
}

// NewsCategory is the schema definition for news.category
var NewsCategory = NewsCategoryTable{
	Table:      "news.category",
	ID:         "id",
	Name:       "name",
	Slug:       "slug",
	ParentID:   "parentid",
	HideOnList: "hideonlist",
}

// Columns lists the selectable columns, qualified with alias.
func (t NewsCategoryTable) Columns(alias string) []string {
	return qualify(alias, t.ID, t.Name, t.Slug, t.ParentID, t.HideOnList)
}
