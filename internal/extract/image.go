package extract

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// extractImage runs OCR over the image bytes. When the default automatic page
// segmentation finds nothing, it retries treating the image as a single block
// of text, which helps with screenshots and photographed paragraphs.
func extractImage(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("ocr language: %w", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("ocr load image: %w", err)
	}

	text, err := client.Text()
	if err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("ocr segmentation mode: %w", err)
	}
	text, err = client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text found in image", ErrNoText)
	}
	return text, nil
}
