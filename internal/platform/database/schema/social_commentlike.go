package schema

// SocialCommentLikeTable represents the 'social.commentlike' table
type SocialCommentLikeTable struct {
	Table     string
	UserID    string
	CommentID string
	CreatedAt string
}

// SocialCommentLike is the schema definition for social.commentlike
var SocialCommentLike = SocialCommentLikeTable{
	Table:     "social.commentlike",
	UserID:    "userid",
	CommentID: "commentid",
	CreatedAt: "createdat",
}
