package service

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/geeta-ai/geeta-be/types"
)

// SupportedExtensions lists the file types the extractor accepts. Anything
// else is rejected before extraction is attempted.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

var pdfPagesRe = regexp.MustCompile(`Pages:\s+(\d+)`)

// ExtractService decodes uploaded files into plain text: PDFs through the
// poppler command-line tools, DOCX through the OOXML document part, and
// txt/md as UTF-8 passthrough.
type ExtractService struct{}

func NewExtractService() *ExtractService {
	return &ExtractService{}
}

func (s *ExtractService) Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return s.extractPDF(data)
	case ".docx":
		return s.extractDocx(data)
	case ".txt", ".md":
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, ext)
	}
}

// extractPDF writes the bytes to a temp file and pulls text page by page
// with pdftotext, joining page texts with newlines. A page that yields no
// text is skipped rather than failing the document.
func (s *ExtractService) extractPDF(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "geeta-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	tmp.Close()

	totalPages, err := getNumPages(tmp.Name())
	if err != nil {
		return "", err
	}

	var pages []string
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := extractTextWithPdftotext(tmp.Name(), pageNum)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		pages = append(pages, cleanText(text))
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("no text extracted from any of %d pages", totalPages)
	}
	return strings.Join(pages, "\n"), nil
}

// extractTextWithPdftotext extracts text from a single page using the
// pdftotext utility.
func extractTextWithPdftotext(path string, pageNumber int) (string, error) {
	cmd := exec.Command("pdftotext",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		path, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext failed for page %d: %w", pageNumber, err)
	}
	pageText := out.String()
	if trimmed := strings.TrimSpace(pageText); len(trimmed) > 0 {
		return trimmed, nil
	}
	return "", fmt.Errorf("got nothing at page %d", pageNumber)
}

// getNumPages uses pdfinfo to get the total number of pages in a PDF file.
func getNumPages(path string) (int, error) {
	cmd := exec.Command("pdfinfo", path)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}

	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		if matches := pdfPagesRe.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

// extractDocx opens the DOCX container and joins the paragraph texts of
// word/document.xml with newlines.
func (s *ExtractService) extractDocx(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("invalid docx container: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open document part: %w", err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("failed to read document part: %w", err)
		}

		var doc documentXML
		if err := xml.Unmarshal(content, &doc); err != nil {
			return "", fmt.Errorf("failed to parse document part: %w", err)
		}
		var sb strings.Builder
		for i, para := range doc.Body.Paragraphs {
			if i > 0 {
				sb.WriteString("\n")
			}
			for _, run := range para.Runs {
				for _, text := range run.Text {
					sb.WriteString(text.Content)
				}
			}
		}
		return sb.String(), nil
	}
	return "", fmt.Errorf("no word/document.xml in docx container")
}

// cleanText strips control characters that pdftotext leaves behind.
func cleanText(text string) string {
	replacer := strings.NewReplacer(
		"\x00", "",
		"\uFFFD", "",
		"\x1b", "",
		"\r", "",
		"\f", "\n",
	)
	return strings.TrimSpace(replacer.Replace(text))
}
