package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	mimeText = "text/plain"
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// MinTextLength is the minimum number of characters an extraction result must
// carry before it is worth classifying. Callers enforce it; the extractors
// only guarantee a trimmed, non-empty result.
const MinTextLength = 10

// MaxFileSize caps uploads before any extraction work happens.
const MaxFileSize = 10 << 20 // 10MB

// ErrNoText indicates the file was parsed but yielded no usable text.
var ErrNoText = errors.New("no text could be extracted")

// ErrUnsupportedType indicates the declared type maps to no known extractor.
var ErrUnsupportedType = errors.New("unsupported file type")

// ExtractText routes an uploaded payload to a format-specific extractor by
// declared MIME type, falling back to the filename extension when the type is
// absent or generic. The result is always trimmed of surrounding whitespace.
func ExtractText(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	normalized := normalizeMimeType(mimeType, fileName)
	var (
		text string
		err  error
	)
	switch normalized {
	case mimeText:
		text = decodePlainText(data)
	case mimePDF:
		text, err = extractPDF(data)
	case mimeDOCX:
		text, err = extractDOCX(data)
	case mimeJPEG, mimePNG:
		text, err = extractImage(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s name=%s: %w", normalized, fileName, err)
	}
	return strings.TrimSpace(text), nil
}

// normalizeMimeType cleans the declared content type and, when it is missing
// or too generic to dispatch on, maps the filename extension instead.
func normalizeMimeType(mimeType string, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case "", "application/octet-stream", "application/zip":
		if mapped := mimeFromExtension(fileName); mapped != "" {
			return mapped
		}
	case "image/jpg":
		return mimeJPEG
	}
	if clean == "" {
		return "application/octet-stream"
	}
	return clean
}

func mimeFromExtension(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return mimeText
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".jpg", ".jpeg":
		return mimeJPEG
	case ".png":
		return mimePNG
	default:
		return ""
	}
}
