package api

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOfWidth(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestShrinkImageDownscalesWideImages(t *testing.T) {
	data, name := shrinkImage(pngOfWidth(t, 400, 200), "plato.png", 100)
	assert.Equal(t, "plato.png", name)

	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestShrinkImageKeepsNarrowImages(t *testing.T) {
	original := pngOfWidth(t, 80, 40)
	data, name := shrinkImage(original, "plato.png", 100)
	assert.Equal(t, original, data)
	assert.Equal(t, "plato.png", name)
}

func TestShrinkImageConvertsUnknownFormatsToJPEG(t *testing.T) {
	data, name := shrinkImage(pngOfWidth(t, 400, 200), "plato.bmpx", 100)
	assert.Equal(t, "plato.jpg", name)
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestShrinkImagePassesThroughGarbage(t *testing.T) {
	data, name := shrinkImage([]byte("not an image"), "notes.txt", 100)
	assert.Equal(t, []byte("not an image"), data)
	assert.Equal(t, "notes.txt", name)
}

func TestUploadImageSendsMultipartField(t *testing.T) {
	var (
		gotName string
		gotAuth string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		file, header, err := r.FormFile("imagen")
		require.NoError(t, err)
		defer file.Close()
		gotName = header.Filename
		io.WriteString(w, `{"url":"https://cdn.example/plato.png"}`)
	}, WithTokenSource(StaticToken("tok")), WithMaxImageWidth(50))

	res, err := c.UploadImage(context.Background(), "plato.png", bytes.NewReader(pngOfWidth(t, 120, 60)))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/plato.png", res.URL)
	assert.Equal(t, "plato.png", gotName)
	assert.Equal(t, "Bearer tok", gotAuth)
}
