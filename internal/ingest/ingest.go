// Package ingest turns uploaded resume files into plain text.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxFileSize is the largest resume file accepted
const MaxFileSize = 10 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
	ErrNoText          = errors.New("no text found in document")
)

// SupportedExtensions lists the file types Extract understands
var SupportedExtensions = []string{".txt", ".pdf", ".docx"}

// Extract returns the text of a .txt, .pdf or .docx document. The type is
// chosen by the extension of name.
func Extract(name string, data []byte) (string, error) {
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes", ErrTooLarge, len(data))
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		if !utf8.Valid(data) {
			return strings.ToValidUTF8(string(data), " "), nil
		}
		return string(data), nil
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, name)
	}
}

// ExtractText is Extract with every failure degraded to an empty string.
// An empty resume is still a valid input to the matcher.
func ExtractText(name string, data []byte) string {
	text, err := Extract(name, data)
	if err != nil {
		slog.Warn("could not extract text, using empty document",
			slog.String("file", name), slog.Any("error", err))
		return ""
	}
	return text
}

// ExtractFile reads and extracts the file at path
func ExtractFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %s", ErrTooLarge, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return Extract(filepath.Base(path), data)
}

func extractPDF(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			slog.Debug("skipping unreadable pdf page", slog.Int("page", i), slog.Any("error", err))
			continue
		}
		b.WriteString(pageText)
		b.WriteByte('\n')
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoText
	}
	return b.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err == nil {
		defer doc.Close()
		if text := textFromDocumentXML(strings.NewReader(doc.Editable().GetContent())); strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	// documents without relationship parts are rejected by the docx reader
	// but still carry word/document.xml
	zr, zerr := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if zerr != nil {
		if err != nil {
			return "", fmt.Errorf("failed to parse docx: %w", err)
		}
		return "", fmt.Errorf("failed to parse docx: %w", zerr)
	}
	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, "word/document.xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}
		defer rc.Close()
		if text := textFromDocumentXML(rc); strings.TrimSpace(text) != "" {
			return text, nil
		}
		return "", ErrNoText
	}
	return "", fmt.Errorf("failed to parse docx: word/document.xml not found")
}

// textFromDocumentXML walks WordprocessingML and keeps run text, turning
// paragraphs and breaks into newlines and tabs into tabs.
func textFromDocumentXML(r io.Reader) string {
	dec := xml.NewDecoder(r)
	var buf strings.Builder
	lastNewline := true
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				var s string
				if err := dec.DecodeElement(&s, &t); err == nil {
					buf.WriteString(s)
					lastNewline = false
				}
			case "tab":
				buf.WriteByte('\t')
			case "br", "cr":
				buf.WriteByte('\n')
				lastNewline = true
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "tr") && !lastNewline {
				buf.WriteByte('\n')
				lastNewline = true
			}
		}
	}
	return buf.String()
}
