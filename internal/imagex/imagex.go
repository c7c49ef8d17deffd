// Package imagex turns binary file content into transportable data URLs and
// bounds image payloads so they fit the remote store's per-record ceiling.
package imagex

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/smpn3pacet/pustaka/internal/common"
)

// EncodeDataURL wraps raw bytes in a base64 data URL with the given MIME type.
// The encoding is deterministic for a given input.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its MIME type and raw bytes.
// Malformed input is reported as common.ErrEncoding.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: not a data URL", common.ErrEncoding)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data URL payload", common.ErrEncoding)
	}
	mime, _, _ := strings.Cut(meta, ";")
	if !strings.Contains(meta, "base64") {
		return "", nil, fmt.Errorf("%w: data URL is not base64-encoded", common.ErrEncoding)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", common.ErrEncoding, err)
	}
	return mime, data, nil
}

// Compress re-encodes an image data URL as JPEG at the given quality,
// downscaling proportionally when the raster is wider than maxWidth. Failure
// to decode returns the input unchanged: compression is best-effort and must
// never block the save path.
func Compress(dataURL string, maxWidth, quality int) string {
	_, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return dataURL
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return dataURL
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxWidth {
		scaled := maxWidth * height / width
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, scaled))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return dataURL
	}
	return EncodeDataURL("image/jpeg", buf.Bytes())
}
