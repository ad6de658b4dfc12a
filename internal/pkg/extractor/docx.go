package extractor

import (
	"bytes"
	"strings"

	"github.com/unidoc/unioffice/common/license"
	"github.com/unidoc/unioffice/document"
)

// SetLicense registers a metered unioffice key. Empty keys are ignored.
func SetLicense(key string) error {
	if key == "" {
		return nil
	}
	return license.SetMeteredKey(key)
}

type docxParser struct{}

func (docxParser) Parse(content []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var sb strings.Builder
	writeParagraphs(&sb, doc.Paragraphs())

	// Resumes often lay out skills and experience in tables
	for _, table := range doc.Tables() {
		for _, row := range table.Rows() {
			for _, cell := range row.Cells() {
				writeParagraphs(&sb, cell.Paragraphs())
			}
		}
	}

	return sb.String(), nil
}

func writeParagraphs(sb *strings.Builder, paragraphs []document.Paragraph) {
	for _, p := range paragraphs {
		for _, run := range p.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n")
	}
}
