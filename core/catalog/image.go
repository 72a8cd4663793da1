package catalog

import (
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// MaxImageSize is the largest upload the API accepts.
const MaxImageSize = 2 << 20

var allowedImageTypes = []string{"image/png", "image/jpg", "image/jpeg", "image/webp"}

// Image is a product image upload.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewImage builds an upload from raw bytes, detecting the content type from the
// data and falling back to the file extension.
func NewImage(filename string, data []byte) *Image {
	return &Image{Filename: filename, ContentType: detectContentType(filename, data), Data: data}
}

// Validate enforces the upload size and type limits.
func (img *Image) Validate() error {
	return ValidateImage(img.ContentType, len(img.Data))
}

// ValidateImage enforces the upload limits for a file of the given type and size.
func ValidateImage(contentType string, size int) error {
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	if !slices.Contains(allowedImageTypes, strings.ToLower(contentType)) {
		return ErrImageType
	}
	return nil
}

func detectContentType(filename string, data []byte) string {
	if len(data) > 0 {
		if ct := http.DetectContentType(data); ct != "application/octet-stream" && !strings.HasPrefix(ct, "text/plain") {
			return ct
		}
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
