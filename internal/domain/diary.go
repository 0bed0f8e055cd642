package domain

import "time"

// MaxTitleLength is the maximum length of diary and note titles.
const MaxTitleLength = 100

// Diary is a named collection of notes owned by one user.
// Titles are unique per author; the same title may exist under
// different authors.
type Diary struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
