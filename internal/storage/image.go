package storage

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	apperrors "recipebox/internal/errors"
)

// DetectImage verifies that data decodes as a supported image and returns
// the detected format ("jpeg", "png", "gif", "webp"). Detection reads the
// actual image header, a lying file extension or content type is not enough
// to get past it.
func DetectImage(data []byte) (format string, err error) {
	_, format, err = image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", apperrors.ErrInvalidImage
	}
	return format, nil
}

// ContentType returns the MIME type for a format reported by DetectImage.
func ContentType(format string) string {
	return "image/" + format
}
