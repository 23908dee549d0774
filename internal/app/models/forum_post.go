package models

import (
	"time"
)

// ForumPost represents a discussion post on the shared forum.
type ForumPost struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	PostedByID int64     `json:"-" db:"posted_by_id"`
	// MentionedCollegeIDs keeps the list exactly as submitted, order and
	// duplicates included.
	MentionedCollegeIDs []int64   `json:"-" db:"mentioned_colleges"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`

	PostedBy          *CollegeSummary   `json:"postedBy,omitempty"`
	MentionedColleges []*CollegeSummary `json:"mentionedColleges"`
}
