package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table     string
	ID        string
	BookID    string
	Title     string
	Content   string
	Ordinal   string
	CreatedAt string
	UpdatedAt string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:     "core.chapter",
	ID:        "id",
	BookID:    "bookid",
	Title:     "title",
	Content:   "content",
	Ordinal:   "ordinal",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Title, t.Content, t.Ordinal, t.CreatedAt, t.UpdatedAt}
}
