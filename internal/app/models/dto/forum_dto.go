package dto

// CreateForumPostRequest represents a new forum post
type CreateForumPostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=5000"`
	// MentionedColleges is passed through as submitted; order and
	// duplicates are preserved.
	MentionedColleges []int64 `json:"mentionedColleges,omitempty"`
}

// UpdateForumPostRequest represents a partial forum post update
type UpdateForumPostRequest struct {
	Title             *string  `json:"title,omitempty" binding:"omitempty,max=200"`
	Content           *string  `json:"content,omitempty" binding:"omitempty,max=5000"`
	MentionedColleges *[]int64 `json:"mentionedColleges,omitempty"`
}
