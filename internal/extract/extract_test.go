package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExtractTextPlainUTF8(t *testing.T) {
	text, err := ExtractText(context.Background(), []byte("  hello from a plain file  "), "text/plain", "notes.txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "hello from a plain file" {
		t.Fatalf("expected trimmed text, got %q", text)
	}
}

func TestExtractTextExtensionFallback(t *testing.T) {
	// Browsers often declare octet-stream for .txt uploads.
	text, err := ExtractText(context.Background(), []byte("fallback dispatch works"), "application/octet-stream", "notes.txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "fallback dispatch works" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextExtensionFallbackIgnoredForSpecificMime(t *testing.T) {
	// A specific declared type must win over the extension.
	_, err := ExtractText(context.Background(), []byte("csv,data"), "text/csv", "data.txt")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("binary"), "application/x-tar", "archive.tar")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if !strings.Contains(err.Error(), "application/x-tar") {
		t.Fatalf("error should name the rejected type, got %v", err)
	}
}

func TestExtractTextSizeCap(t *testing.T) {
	big := make([]byte, MaxFileSize+1)
	_, err := ExtractText(context.Background(), big, "text/plain", "big.txt")
	if err == nil || !strings.Contains(err.Error(), "file too large") {
		t.Fatalf("expected size cap error, got %v", err)
	}
}

func TestExtractTextCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ExtractText(ctx, []byte("ignored"), "text/plain", "a.txt"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizeMimeTypeStripsParameters(t *testing.T) {
	got := normalizeMimeType("Text/Plain; charset=UTF-8", "whatever.bin")
	if got != "text/plain" {
		t.Fatalf("expected text/plain, got %q", got)
	}
}

func TestNormalizeMimeTypeJPGAlias(t *testing.T) {
	if got := normalizeMimeType("image/jpg", "photo.jpg"); got != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q", got)
	}
}

func TestExtractDOCXParagraphsBeforeTables(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Cell one</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>Cell two</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	data := buildDocx(t, docXML)
	text, err := ExtractText(context.Background(), data, "", "report.docx")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}

	want := "First paragraph.\nSecond paragraph.\nCell one\nCell two"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
}

func TestExtractDOCXEmptyBody(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body><w:p><w:r><w:t>   </w:t></w:r></w:p></w:body>
</w:document>`

	data := buildDocx(t, docXML)
	_, err := ExtractText(context.Background(), data, "", "empty.docx")
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("<styles/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = ExtractText(context.Background(), buf.Bytes(), "", "broken.docx")
	if err == nil || !strings.Contains(err.Error(), "document.xml") {
		t.Fatalf("expected missing document.xml error, got %v", err)
	}
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
