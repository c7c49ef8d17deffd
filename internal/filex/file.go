// Package filex handles attachment files on the local filesystem: reading a
// user-selected file into a staged attachment, and writing a stored
// attachment back to disk under its deterministic download name.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smpn3pacet/pustaka/internal/client/models"
	"github.com/smpn3pacet/pustaka/internal/common"
	"github.com/smpn3pacet/pustaka/internal/imagex"
)

// mimeByExt maps the supported upload extensions to their MIME types.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".pdf":  "application/pdf",
}

var extByMime = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// DetectKind classifies a filename by extension. Unsupported extensions are
// reported as models.ErrUnknownFileKind.
func DetectKind(name string) (models.AttachmentKind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mime, ok := mimeByExt[ext]
	if !ok {
		return "", models.ErrUnknownFileKind
	}
	if mime == "application/pdf" {
		return models.AttachmentKindPDF, nil
	}
	return models.AttachmentKindImage, nil
}

// LoadAttachment reads a file from disk and stages it as an attachment with
// its content embedded as a data URL. Read failures are common.ErrEncoding:
// the item must not be partially saved.
func LoadAttachment(path string) (models.Attachment, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return models.Attachment{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}

	mime := mimeByExt[strings.ToLower(filepath.Ext(path))]
	return models.Attachment{
		ID:   models.NewAttachmentID(),
		URL:  imagex.EncodeDataURL(mime, data),
		Name: filepath.Base(path),
		Kind: kind,
	}, nil
}

// DownloadName builds the deterministic filename for the index-th attachment
// of an item: "Doc_<activity name with whitespace collapsed to
// underscores>_<index+1><ext>". The extension follows the stored MIME type.
func DownloadName(activityName string, index int, mime string) string {
	base := strings.Join(strings.Fields(activityName), "_")
	ext, ok := extByMime[mime]
	if !ok {
		ext = ".bin"
	}
	return fmt.Sprintf("Doc_%s_%d%s", base, index+1, ext)
}

// SaveAttachment decodes a stored attachment and writes it into dir under its
// deterministic download name, returning the written path.
func SaveAttachment(dir string, a models.Attachment, activityName string, index int) (string, error) {
	mime, data, err := imagex.DecodeDataURL(a.URL)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	path := filepath.Join(dir, DownloadName(activityName, index, mime))
	if err := os.WriteFile(path, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
