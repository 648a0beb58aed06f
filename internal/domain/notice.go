package domain

import "time"

// NoticeTab is the public listing's coarse pinned/normal filter.
type NoticeTab string

const (
	NoticeTabAll    NoticeTab = "ALL"
	NoticeTabPinned NoticeTab = "PINNED"
	NoticeTabNormal NoticeTab = "NORMAL"
)

// PublishedFilter is the admin listing's Y/N/ALL published filter.
type PublishedFilter string

const (
	PublishedAll PublishedFilter = "ALL"
	PublishedYes PublishedFilter = "Y"
	PublishedNo  PublishedFilter = "N"
)

type Notice struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Published bool      `json:"published" db:"published"`
	Pinned    bool      `json:"pinned" db:"pinned"`
	CreatedAt time.Time `json:"created_at" db:"created"`
	UpdatedAt time.Time `json:"updated_at" db:"updated"`
}

// NoticeInput carries admin-editable notice fields. Nil fields are left
// untouched by patch updates.
type NoticeInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
	Pinned    *bool   `json:"pinned"`
}

func (in *NoticeInput) ValidateForCreate() error {
	if in.Title == nil || *in.Title == "" {
		return NewValidationError("MISSING_TITLE", "Title is required", nil)
	}
	return nil
}
