// Package models defines the server-side representation of documentation
// items and the mutation envelope accepted by the HTTP endpoint. JSON field
// names are part of the wire contract and must not change.
package models

import "errors"

// MaxAttachmentBytes caps the decoded payload of a single attachment. The
// collection backend stores each attachment in one cell, so anything larger
// cannot be persisted.
const MaxAttachmentBytes = 50000

// Action names one mutation kind.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var (
	ErrMissingID        = errors.New("item id is required")
	ErrUnknownAction    = errors.New("unknown mutation action")
	ErrAttachmentTooBig = errors.New("attachment exceeds the per-attachment size ceiling")
	ErrMissingActivity  = errors.New("activity name is required")
	ErrMissingCreatedAt = errors.New("createdAt timestamp is required")
	ErrMissingData      = errors.New("mutation data is required")
)

// Attachment mirrors the client attachment: content travels inline as a
// base64 data URL.
type Attachment struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
	Kind string `json:"type"`
}

// Item is one documented activity as stored in the collection.
type Item struct {
	ID           string       `json:"id"`
	Date         string       `json:"date"`
	ActivityName string       `json:"activityName"`
	Description  string       `json:"description"`
	Files        []Attachment `json:"files"`
	CreatedAt    int64        `json:"createdAt"`
}

// Mutation is the POST envelope: one action applied to one item.
type Mutation struct {
	Action Action `json:"action"`
	Data   *Item  `json:"data"`
}

// Validate checks the mutation before it touches storage. Deletes only need
// an id; writes need the full item and attachments under the size ceiling.
func (m Mutation) Validate() error {
	if m.Data == nil {
		return ErrMissingData
	}
	if m.Data.ID == "" {
		return ErrMissingID
	}

	switch m.Action {
	case ActionDelete:
		return nil
	case ActionAdd, ActionUpdate:
	default:
		return ErrUnknownAction
	}

	if m.Data.ActivityName == "" {
		return ErrMissingActivity
	}
	if m.Data.CreatedAt == 0 {
		return ErrMissingCreatedAt
	}
	for _, f := range m.Data.Files {
		if attachmentPayloadSize(f.URL) > MaxAttachmentBytes {
			return ErrAttachmentTooBig
		}
	}
	return nil
}

// attachmentPayloadSize estimates the decoded size of a data URL payload.
// Base64 encodes 3 bytes into 4 characters; the estimate errs on the small
// side by at most 2 bytes, which is noise against the ceiling.
func attachmentPayloadSize(dataURL string) int {
	for i := 0; i < len(dataURL); i++ {
		if dataURL[i] == ',' {
			return (len(dataURL) - i - 1) / 4 * 3
		}
	}
	return len(dataURL) / 4 * 3
}
