// Package models defines the documentation item types stored locally and
// exchanged with the remote collection endpoint. JSON field names are part of
// the wire contract and must not change.
package models

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// AttachmentKind classifies an attachment. The set is closed.
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindPDF   AttachmentKind = "pdf"
)

// Per-item attachment caps, applied at form validation.
const (
	MaxImagesPerItem = 10
	MaxPDFsPerItem   = 10
)

var (
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrNameRequired    = errors.New("activity name is required")
	ErrTooManyFiles    = errors.New("too many attachments of one kind")
	ErrUnknownFileKind = errors.New("unknown attachment kind")
	ErrEmptyAttachment = errors.New("attachment has no content")
)

// Attachment is one uploaded file belonging to an item. URL holds a data URL
// with the base64-encoded content, both while staged and once persisted.
type Attachment struct {
	ID   string         `json:"id"`
	URL  string         `json:"url"`
	Name string         `json:"name,omitempty"`
	Kind AttachmentKind `json:"type"`
}

// Item is one documented activity. ID is assigned client-side at creation and
// is the identity key for reconciliation; CreatedAt (Unix milliseconds) is the
// canonical sort key, newest first.
type Item struct {
	ID           string       `json:"id"`
	Date         string       `json:"date"`
	ActivityName string       `json:"activityName"`
	Description  string       `json:"description"`
	Files        []Attachment `json:"files"`
	CreatedAt    int64        `json:"createdAt"`
}

// Form carries the user-editable fields of an item.
type Form struct {
	Date         string
	ActivityName string
	Description  string
	Files        []Attachment
}

// Validate checks the form against the wire contract: a parseable date, a
// non-empty activity name, valid attachment kinds and per-kind caps.
func (f Form) Validate() error {
	if _, err := time.Parse("2006-01-02", f.Date); err != nil {
		return ErrInvalidDate
	}
	if f.ActivityName == "" {
		return ErrNameRequired
	}
	var images, pdfs int
	for _, a := range f.Files {
		switch a.Kind {
		case AttachmentKindImage:
			images++
		case AttachmentKindPDF:
			pdfs++
		default:
			return ErrUnknownFileKind
		}
		if a.URL == "" {
			return ErrEmptyAttachment
		}
	}
	if images > MaxImagesPerItem || pdfs > MaxPDFsPerItem {
		return ErrTooManyFiles
	}
	return nil
}

// NewItem builds a new item from a validated form, assigning a fresh id and
// the creation timestamp.
func NewItem(f Form, now time.Time) *Item {
	return &Item{
		ID:           uuid.NewString(),
		Date:         f.Date,
		ActivityName: f.ActivityName,
		Description:  f.Description,
		Files:        f.Files,
		CreatedAt:    now.UnixMilli(),
	}
}

// NewAttachmentID returns an id unique within the parent item.
func NewAttachmentID() string {
	return uuid.NewString()
}

// Apply replaces the mutable fields of the item with the form's values.
// ID and CreatedAt never change once assigned.
func (i *Item) Apply(f Form) {
	i.Date = f.Date
	i.ActivityName = f.ActivityName
	i.Description = f.Description
	i.Files = f.Files
}

// SortNewestFirst orders items by CreatedAt descending, id ascending on ties,
// which is the display-order baseline.
func SortNewestFirst(items []*Item) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].CreatedAt != items[b].CreatedAt {
			return items[a].CreatedAt > items[b].CreatedAt
		}
		return items[a].ID < items[b].ID
	})
}
