package domain

import "time"

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "NEW"
	InquiryInProgress InquiryStatus = "IN_PROGRESS"
	InquiryDone       InquiryStatus = "DONE"
)

func (s InquiryStatus) IsValid() bool {
	switch s {
	case InquiryNew, InquiryInProgress, InquiryDone:
		return true
	default:
		return false
	}
}

// Inquiry is a contact request. UserID is empty for anonymous inquiries.
// Title and content are immutable after creation; admins may only patch the
// status and admin memo.
type Inquiry struct {
	ID        string        `json:"id" db:"id"`
	UserID    string        `json:"user_id,omitempty" db:"user"`
	Name      string        `json:"name" db:"name"`
	Email     string        `json:"email" db:"email"`
	Phone     string        `json:"phone" db:"phone"`
	Title     string        `json:"title" db:"title"`
	Content   string        `json:"content" db:"content"`
	Status    InquiryStatus `json:"status" db:"status"`
	AdminMemo string        `json:"admin_memo,omitempty" db:"admin_memo"`
	CreatedAt time.Time     `json:"created_at" db:"created"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated"`
}

type CreateInquiryRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (r *CreateInquiryRequest) Validate() error {
	if r.Name == "" {
		return NewValidationError("MISSING_NAME", "Name is required", nil)
	}
	if r.Title == "" {
		return NewValidationError("MISSING_TITLE", "Title is required", nil)
	}
	if r.Content == "" {
		return NewValidationError("MISSING_CONTENT", "Content is required", nil)
	}
	return nil
}

// AdminInquiryPatch is the admin-side partial update of status and memo.
type AdminInquiryPatch struct {
	Status    *InquiryStatus `json:"status"`
	AdminMemo *string        `json:"admin_memo"`
}

func (p *AdminInquiryPatch) Validate() error {
	if p.Status == nil && p.AdminMemo == nil {
		return NewValidationError("EMPTY_PATCH", "At least one field must be set", nil)
	}
	if p.Status != nil && !p.Status.IsValid() {
		return NewValidationError("INVALID_STATUS", "Invalid inquiry status", nil)
	}
	return nil
}
