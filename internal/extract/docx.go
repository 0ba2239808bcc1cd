package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// extractDOCX reads word/document.xml out of the OOXML container and returns
// body paragraph text followed by table-cell text, each group in document
// order.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	text, err := collectDocxText(raw)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}

// collectDocxText walks the document XML once, routing character data into a
// paragraph buffer or a table buffer depending on whether the enclosing
// paragraph sits inside a w:tbl element.
func collectDocxText(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))

	var (
		paragraphs strings.Builder
		tables     strings.Builder
		tableDepth int
		inText     bool
	)

	target := func() *strings.Builder {
		if tableDepth > 0 {
			return &tables
		}
		return &paragraphs
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "t":
				inText = true
			case "br", "cr":
				target().WriteString("\n")
			case "tab":
				target().WriteString("\t")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				if tableDepth > 0 {
					tableDepth--
				}
			case "t":
				inText = false
			case "p":
				if target().Len() > 0 {
					target().WriteString("\n")
				}
			}
		case xml.CharData:
			if inText {
				target().Write(t)
			}
		}
	}

	combined := strings.TrimRight(paragraphs.String(), "\n")
	if tables.Len() > 0 {
		if combined != "" {
			combined += "\n"
		}
		combined += strings.TrimRight(tables.String(), "\n")
	}
	return combined, nil
}
