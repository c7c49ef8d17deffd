package imagex

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smpn3pacet/pustaka/internal/common"
)

func pngDataURL(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return EncodeDataURL("image/png", buf.Bytes())
}

func decodeImage(t *testing.T, dataURL string) image.Image {
	t.Helper()
	mime, data, err := DecodeDataURL(dataURL)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", mime)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestDataURL_RoundTrip(t *testing.T) {
	url := EncodeDataURL("application/pdf", []byte("%PDF-1.4 test"))

	mime, data, err := DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", mime)
	assert.Equal(t, []byte("%PDF-1.4 test"), data)
}

func TestDecodeDataURL_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not a data url", in: "https://example.com/a.png"},
		{name: "no payload", in: "data:image/png;base64"},
		{name: "not base64 encoded", in: "data:text/plain,hello"},
		{name: "invalid base64", in: "data:image/png;base64,!!!"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeDataURL(tc.in)
			assert.ErrorIs(t, err, common.ErrEncoding)
		})
	}
}

func TestCompress_DownscalesWideImages(t *testing.T) {
	out := Compress(pngDataURL(t, 200, 100), 50, 80)

	img := decodeImage(t, out)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy(), "aspect ratio must be preserved")
}

func TestCompress_KeepsNarrowImageDimensions(t *testing.T) {
	out := Compress(pngDataURL(t, 40, 80), 50, 80)

	img := decodeImage(t, out)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
	assert.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"), "still re-encoded as jpeg")
}

func TestCompress_ReturnsInputOnDecodeFailure(t *testing.T) {
	notAnImage := EncodeDataURL("image/png", []byte("not a real png"))

	assert.Equal(t, notAnImage, Compress(notAnImage, 50, 80))
	assert.Equal(t, "garbage", Compress("garbage", 50, 80))
}
