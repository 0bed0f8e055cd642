package domain

import "time"

// Note is a titled rich-text document belonging to exactly one diary.
// Titles are unique within a diary. Deleting the parent diary deletes
// its notes.
type Note struct {
	ID        string    `json:"id"`
	DiaryID   string    `json:"diary_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp to the current time.
// Call this whenever the note's title or content changes.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
// Call this when creating a new note.
func (n *Note) InitTimestamps() {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
}
