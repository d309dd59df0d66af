package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table       string
	ID          string
	AuthorID    string
	Title       string
	Slug        string
	Description string
	CoverURL    string
	Tags        string
	IsPublished string
	ViewCount   string
	RatingAvg   string
	RatingCount string
	CreatedAt   string
	UpdatedAt   string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:       "core.book",
	ID:          "id",
	AuthorID:    "authorid",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	CoverURL:    "coverurl",
	Tags:        "tags",
	IsPublished: "ispublished",
	ViewCount:   "viewcount",
	RatingAvg:   "ratingavg",
	RatingCount: "ratingcount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t CoreBookTable) Columns() []string {
	return []string{
		t.ID, t.AuthorID, t.Title, t.Slug, t.Description, t.CoverURL, t.Tags,
		t.IsPublished, t.ViewCount, t.RatingAvg, t.RatingCount, t.CreatedAt, t.UpdatedAt,
	}
}
