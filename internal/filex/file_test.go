package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smpn3pacet/pustaka/internal/client/models"
	"github.com/smpn3pacet/pustaka/internal/common"
	"github.com/smpn3pacet/pustaka/internal/imagex"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     models.AttachmentKind
		wantErr  bool
	}{
		{name: "jpeg", fileName: "photo.JPG", want: models.AttachmentKindImage},
		{name: "png", fileName: "foto.png", want: models.AttachmentKindImage},
		{name: "pdf", fileName: "laporan.pdf", want: models.AttachmentKindPDF},
		{name: "unsupported", fileName: "notes.txt", wantErr: true},
		{name: "no extension", fileName: "README", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := DetectKind(tc.fileName)
			if tc.wantErr {
				assert.ErrorIs(t, err, models.ErrUnknownFileKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, kind)
		})
	}
}

func TestLoadAttachment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "laporan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 isi"), 0o660))

	a, err := LoadAttachment(path)
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, models.AttachmentKindPDF, a.Kind)
	assert.Equal(t, "laporan.pdf", a.Name)

	mime, data, err := imagex.DecodeDataURL(a.URL)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, []byte("%PDF-1.4 isi"), data)
}

func TestLoadAttachment_MissingFile(t *testing.T) {
	_, err := LoadAttachment(filepath.Join(t.TempDir(), "hilang.png"))
	assert.ErrorIs(t, err, common.ErrEncoding)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "Doc_HUT_RI_1.jpg", DownloadName("HUT RI", 0, "image/jpeg"))
	assert.Equal(t, "Doc_Upacara_Bendera_Pagi_3.pdf", DownloadName("Upacara  Bendera\tPagi", 2, "application/pdf"))
	assert.Equal(t, "Doc_X_1.bin", DownloadName("X", 0, "application/octet-stream"))
}

func TestSaveAttachment_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := models.Attachment{
		ID:   models.NewAttachmentID(),
		URL:  imagex.EncodeDataURL("image/png", []byte{0x89, 0x50, 0x4e, 0x47}),
		Kind: models.AttachmentKindImage,
	}

	path, err := SaveAttachment(dir, a, "HUT RI", 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Doc_HUT_RI_2.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}
