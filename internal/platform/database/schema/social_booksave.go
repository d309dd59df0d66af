package schema

// SocialBookSaveTable represents the 'social.booksave' table
type SocialBookSaveTable struct {
	Table     string
	UserID    string
	BookID    string
	CreatedAt string
}

// SocialBookSave is the schema definition for social.booksave
var SocialBookSave = SocialBookSaveTable{
	Table:     "social.booksave",
	UserID:    "userid",
	BookID:    "bookid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SocialBookSaveTable) Columns() []string {
	return []string{t.UserID, t.BookID, t.CreatedAt}
}
