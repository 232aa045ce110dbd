package writer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// Writer serializes a parsed statement.
type Writer interface {
	Write(out io.Writer, info *models.StatementInfo) error
	WriteToFile(path string, info *models.StatementInfo) error
}

// Format names an output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// New returns the writer for format.
func New(format Format, includeType bool) (Writer, error) {
	switch Format(strings.ToLower(string(format))) {
	case "", FormatCSV:
		return &CSVWriter{IncludeType: includeType}, nil
	case FormatXLSX:
		return &XLSXWriter{IncludeType: includeType}, nil
	case FormatJSON:
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want csv, xlsx or json)", format)
	}
}

// OutputPath replaces the extension of inputPath with the format's extension.
func OutputPath(inputPath string, format Format) string {
	if format == "" {
		format = FormatCSV
	}
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "." + strings.ToLower(string(format))
}
