package schema

// SocialBookLikeTable represents the 'social.booklike' table
type SocialBookLikeTable struct {
	Table     string
	UserID    string
	BookID    string
	CreatedAt string
}

// SocialBookLike is the schema definition for social.booklike
var SocialBookLike = SocialBookLikeTable{
	Table:     "social.booklike",
	UserID:    "userid",
	BookID:    "bookid",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t SocialBookLikeTable) Columns() []string {
	return []string{t.UserID, t.BookID, t.CreatedAt}
}
