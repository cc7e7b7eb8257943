package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"saborify/models"
)

// UploadImage posts an image as the multipart field "imagen". Images wider
// than the configured cap are downscaled before they leave the process.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (models.UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("Error al subir la imagen: read: %w", err)
	}
	data, filename = shrinkImage(data, filename, c.maxImageWidth)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("imagen", filepath.Base(filename))
	if err != nil {
		return models.UploadResult{}, err
	}
	if _, err := part.Write(data); err != nil {
		return models.UploadResult{}, err
	}
	if err := mw.Close(); err != nil {
		return models.UploadResult{}, err
	}

	var out models.UploadResult
	err = c.do(ctx, call{
		method:      http.MethodPost,
		path:        "/subirImagen",
		raw:         &body,
		contentType: mw.FormDataContentType(),
		auth:        true,
		op:          "Error al subir la imagen",
	}, &out)
	return out, err
}

// shrinkImage returns the input untouched when it cannot be decoded or is
// already narrow enough.
func shrinkImage(data []byte, filename string, maxWidth int) ([]byte, string) {
	if maxWidth <= 0 {
		return data, filename
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil || img.Bounds().Dx() <= maxWidth {
		return data, filename
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	format, err := imaging.FormatFromFilename(filename)
	if err != nil || (format != imaging.JPEG && format != imaging.PNG) {
		format = imaging.JPEG
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, resized, format, imaging.JPEGQuality(85)); err != nil {
		return data, filename
	}
	return out.Bytes(), filename
}
