package ingest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Python developer</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>SQL</w:t></w:r><w:r><w:tab/><w:t>Cloud</w:t></w:r></w:p>` +
	`</w:body></w:document>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// buildDocx zips the given parts into an in-memory .docx
func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	text, err := Extract("resume.txt", []byte("Python developer\nSQL"))
	require.NoError(t, err)
	assert.Equal(t, "Python developer\nSQL", text)

	text, err = Extract("RESUME.TXT", []byte("upper case extension"))
	require.NoError(t, err)
	assert.Equal(t, "upper case extension", text)

	text, err = Extract("broken.txt", []byte{'o', 'k', 0xff, 'g', 'o'})
	require.NoError(t, err)
	assert.Equal(t, "ok go", text)
}

func TestExtractDocx(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]string
	}{
		{
			name:  "document only",
			parts: map[string]string{"word/document.xml": documentXML},
		},
		{
			name: "with relationships",
			parts: map[string]string{
				"word/document.xml":            documentXML,
				"word/_rels/document.xml.rels": relsXML,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract("resume.docx", buildDocx(t, tt.parts))
			require.NoError(t, err)
			assert.Equal(t, "Python developer\nSQL\tCloud\n", text)
		})
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    []byte
		wantErr error
	}{
		{"unsupported type", "resume.doc", []byte("data"), ErrUnsupportedType},
		{"no extension", "resume", []byte("data"), ErrUnsupportedType},
		{"too large", "resume.txt", make([]byte, MaxFileSize+1), ErrTooLarge},
		{"malformed pdf", "resume.pdf", []byte("not a pdf at all"), nil},
		{"malformed docx", "resume.docx", []byte("not a zip"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Extract(tt.file, tt.data)
			require.Error(t, err)
			assert.Empty(t, text)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.Equal(t, "", ExtractText(tt.file, tt.data), "ExtractText degrades to empty text")
		})
	}
}

func TestExtractDocxMissingDocument(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": "<w:styles/>"})
	_, err := Extract("resume.docx", data)
	assert.Error(t, err)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go engineer"), 0600))

	text, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Go engineer", text)

	_, err = ExtractFile(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}

func TestSupportedExtensions(t *testing.T) {
	for _, ext := range SupportedExtensions {
		assert.True(t, strings.HasPrefix(ext, "."))
	}
}
