package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageAttachment(name string) Attachment {
	return Attachment{ID: NewAttachmentID(), URL: "data:image/png;base64,AAAA", Name: name, Kind: AttachmentKindImage}
}

func TestForm_Validate(t *testing.T) {
	valid := Form{Date: "2024-08-17", ActivityName: "HUT RI", Files: []Attachment{imageAttachment("a.png")}}

	tests := []struct {
		name    string
		mutate  func(f *Form)
		wantErr error
	}{
		{name: "valid", mutate: func(f *Form) {}},
		{name: "bad date", mutate: func(f *Form) { f.Date = "17-08-2024" }, wantErr: ErrInvalidDate},
		{name: "empty name", mutate: func(f *Form) { f.ActivityName = "" }, wantErr: ErrNameRequired},
		{name: "unknown kind", mutate: func(f *Form) { f.Files[0].Kind = "doc" }, wantErr: ErrUnknownFileKind},
		{name: "empty content", mutate: func(f *Form) { f.Files[0].URL = "" }, wantErr: ErrEmptyAttachment},
		{
			name: "too many images",
			mutate: func(f *Form) {
				for i := 0; i <= MaxImagesPerItem; i++ {
					f.Files = append(f.Files, imageAttachment("x.png"))
				}
			},
			wantErr: ErrTooManyFiles,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := valid
			f.Files = append([]Attachment(nil), valid.Files...)
			tc.mutate(&f)
			err := f.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewItem_AssignsIdentityAndTimestamp(t *testing.T) {
	now := time.Date(2024, 8, 17, 10, 0, 0, 0, time.UTC)
	f := Form{Date: "2024-08-17", ActivityName: "HUT RI"}

	item := NewItem(f, now)

	require.NotEmpty(t, item.ID)
	assert.Equal(t, now.UnixMilli(), item.CreatedAt)
	assert.Equal(t, "HUT RI", item.ActivityName)

	other := NewItem(f, now)
	assert.NotEqual(t, item.ID, other.ID)
}

func TestApply_KeepsIdentityAndPreservesFileOrder(t *testing.T) {
	item := NewItem(Form{Date: "2024-08-17", ActivityName: "HUT RI"}, time.Now())
	id, createdAt := item.ID, item.CreatedAt

	first := imageAttachment("first.png")
	second := imageAttachment("second.png")

	item.Apply(Form{Date: "2024-08-18", ActivityName: "Upacara", Files: []Attachment{second, first}})

	assert.Equal(t, id, item.ID)
	assert.Equal(t, createdAt, item.CreatedAt)
	require.Len(t, item.Files, 2)
	assert.Equal(t, second.ID, item.Files[0].ID)
	assert.Equal(t, first.ID, item.Files[1].ID)
}

func TestSortNewestFirst(t *testing.T) {
	a := &Item{ID: "a", CreatedAt: 100}
	b := &Item{ID: "b", CreatedAt: 300}
	c := &Item{ID: "c", CreatedAt: 200}
	tie := &Item{ID: "0", CreatedAt: 300}

	items := []*Item{a, b, c, tie}
	SortNewestFirst(items)

	assert.Equal(t, []*Item{tie, b, c, a}, items)
}
