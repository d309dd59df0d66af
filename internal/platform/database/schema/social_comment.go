package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	UserID    string
	BookID    string
	ChapterID string
	ParentID  string
	Body      string
	CreatedAt string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	UserID:    "userid",
	BookID:    "bookid",
	ChapterID: "chapterid",
	ParentID:  "parentid",
	Body:      "body",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
