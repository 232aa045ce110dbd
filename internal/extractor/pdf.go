package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotFound is returned when the source document does not exist.
	ErrNotFound = errors.New("source document not found")
	// ErrUnreadable is returned when no readable text could be extracted.
	ErrUnreadable = errors.New("no readable text could be extracted")
	// ErrUnsupported is returned for file types the extractor does not handle.
	ErrUnsupported = errors.New("unsupported document type")
)

// ReadDocument returns the text pages of a statement file. PDFs go through
// ExtractText; .txt files are taken as already-extracted text.
func ReadDocument(filePath string) ([]string, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filePath)
		}
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".pdf":
		return ExtractText(filePath)
	case ".txt", ".text":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		return []string{string(data)}, nil
	default:
		return nil, fmt.Errorf("%w: %q (expected .pdf or .txt)", ErrUnsupported, ext)
	}
}

// ExtractText reads a PDF file and returns the text content of each page.
// The ledongthuc/pdf methods are tried first; pdftotext (poppler-utils) is
// the last resort.
func ExtractText(filePath string) ([]string, error) {
	f, r, err := openPDF(filePath)
	if err != nil {
		return fallbackToPdftotext(filePath, err)
	}
	defer f.Close()

	pages, libErr := extractWithLibrary(r)
	if libErr == nil && isReadableText(pages) {
		return pages, nil
	}
	if libErr == nil {
		libErr = ErrUnreadable
	}
	return fallbackToPdftotext(filePath, libErr)
}

// ExtractTextFromBytes extracts page text from an in-memory PDF, as received
// by the HTTP API. There is no pdftotext fallback here.
func ExtractTextFromBytes(data []byte) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pages, err = extractWithLibrary(r)
	if err != nil {
		return nil, err
	}
	if !isReadableText(pages) {
		return nil, fmt.Errorf("%w: the PDF may be image-based or use custom font encodings", ErrUnreadable)
	}
	return pages, nil
}

func openPDF(filePath string) (f *os.File, r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()
	return pdf.Open(filePath)
}

func fallbackToPdftotext(filePath string, libErr error) ([]string, error) {
	pages, err := extractWithPdftotext(filePath)
	if err == nil && isReadableText(pages) {
		return pages, nil
	}
	return nil, fmt.Errorf("%w from %s: %v", ErrUnreadable, filePath, libErr)
}

// textQuality returns the ratio of basic ASCII readable characters to total
// characters, 0.0-1.0.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if r < unicode.MaxASCII && (unicode.IsPrint(r) || unicode.IsSpace(r)) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords appear on every card statement page worth parsing.
var commonWords = []string{
	"transaction", "amount", "date", "statement", "aed", "card",
	"balance", "payment", "credit", "description",
}

func containsCommonWords(pages []string) bool {
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range commonWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// isReadableText requires some text, mostly printable ASCII, and at least one
// word expected on a statement.
func isReadableText(pages []string) bool {
	if totalTextLen(pages) <= 20 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}
	return containsCommonWords(pages)
}

// extractWithPdftotext shells out to pdftotext -layout, page by page.
func extractWithPdftotext(filePath string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %v", err)
	}

	numPages := pageCount(filePath)
	var pages []string
	for i := 1; i <= numPages; i++ {
		pageStr := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", pageStr, "-l", pageStr, filePath, "-").Output()
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(out)); text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) > 0 {
		return pages, nil
	}

	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %v", err)
	}
	if text := strings.TrimSpace(string(out)); text != "" {
		return []string{text}, nil
	}
	return nil, fmt.Errorf("pdftotext produced no output")
}

// pageCount asks pdfinfo for the page count, defaulting to 1.
func pageCount(filePath string) int {
	out, err := exec.Command("pdfinfo", filePath).Output()
	if err != nil {
		return 1
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "Pages:") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
			if err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

// extractWithLibrary runs the ledongthuc/pdf methods in order of layout fidelity.
func extractWithLibrary(r *pdf.Reader) (pages []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("PDF library crashed: %v", rec)
		}
	}()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	pages = extractByRow(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	pages = extractByContent(r, numPages)
	if isReadableText(pages) {
		return pages, nil
	}

	plainText := extractByReaderPlainText(r)
	if isReadableText([]string{plainText}) {
		return []string{plainText}, nil
	}

	return pages, nil
}

// extractByRow joins the words of each text row; rows become lines.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent groups text pieces by Y coordinate to rebuild rows, then
// orders each row by X. Wide gaps become a double space.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type textItem struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		// PDF Y grows upwards.
		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})

			var sb strings.Builder
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
				prevX = item.x
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByReaderPlainText is whole-document extraction, used last.
func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}
