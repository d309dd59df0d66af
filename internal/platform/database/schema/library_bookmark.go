package schema

// LibraryBookmarkTable represents the 'library.bookmark' table
type LibraryBookmarkTable struct {
	Table          string
	ID             string
	UserID         string
	BookID         string
	ChapterID      string
	SelectedText   string
	Position       string
	Note           string
	SelectionStart string
	SelectionEnd   string
	CreatedAt      string
}

// LibraryBookmark is the schema definition for library.bookmark
var LibraryBookmark = LibraryBookmarkTable{
	Table:          "library.bookmark",
	ID:             "id",
	UserID:         "userid",
	BookID:         "bookid",
	ChapterID:      "chapterid",
	SelectedText:   "selectedtext",
	Position:       "position",
	Note:           "note",
	SelectionStart: "selectionstart",
	SelectionEnd:   "selectionend",
	CreatedAt:      "createdat",
}
