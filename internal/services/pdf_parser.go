package services

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFParserService extracts plain text from an uploaded resume. A missing or
// unreadable document yields an empty string rather than an error; the session
// decides what an empty resume means.
type PDFParserService interface {
	ExtractText(filePath string) string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText implements PDFParserService.
func (p *pdfParserService) ExtractText(filePath string) string {
	if filePath == "" {
		return ""
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages and keep whatever the rest yields.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return CleanText(textBuilder.String())
}

// CleanText trims each line and drops blank ones.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
