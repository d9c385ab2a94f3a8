package export

import "fmt"

// Format names an export encoding accepted by the API.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Dataset is tabular content keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Document is a dataset plus the heading lines printed above it in paged formats.
type Document struct {
	Title   string
	Summary []string
	Data    Dataset
}

// ParseFormat normalises the query value, defaulting to CSV.
func ParseFormat(raw string) (Format, error) {
	switch Format(raw) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/csv"
}

// Render encodes doc in the given format.
func Render(f Format, doc Document) ([]byte, error) {
	if len(doc.Data.Headers) == 0 {
		return nil, fmt.Errorf("%s export requires at least one header", f)
	}
	switch f {
	case FormatCSV:
		return renderCSV(doc.Data)
	case FormatPDF:
		return renderPDF(doc)
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
}
