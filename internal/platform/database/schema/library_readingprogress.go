package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table     string
	UserID    string
	BookID    string
	ChapterID string
	Progress  string
	UpdatedAt string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:     "library.readingprogress",
	UserID:    "userid",
	BookID:    "bookid",
	ChapterID: "chapterid",
	Progress:  "progress",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t LibraryReadingProgressTable) Columns() []string {
	return []string{t.UserID, t.BookID, t.ChapterID, t.Progress, t.UpdatedAt}
}
