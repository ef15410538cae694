package linkfactory

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
)

// Export formats.
const (
	FormatXLSX     = "xlsx"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "txt"
	FormatJSON     = "json"
)

// MIME types of the encoded exports.
const (
	MIMETypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMETypeCSV      = "text/csv"
	MIMETypeMarkdown = "text/markdown"
	MIMETypeText     = "text/plain"
	MIMETypeJSON     = "application/json"
)

// Export is an encoded link list.
type Export struct {
	Filename string
	MIMEType string
	Content  []byte
}

// EncodedExport is an Export with its content base64 encoded.
type EncodedExport struct {
	Filename      string `json:"filename" doc:"File name for the download"`
	MIMEType      string `json:"mimetype" doc:"MIME type of the content"`
	ContentBase64 string `json:"content_base64" doc:"Base64 encoded file content"`
}

// SupportedFormats lists the accepted export format names.
func SupportedFormats() []string {
	return []string{FormatXLSX, FormatCSV, FormatMarkdown, FormatText, "text", FormatJSON}
}

// Encode serializes links in the given format. Format names are case-insensitive.
func Encode(links []string, format string) (*Export, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatXLSX:
		content, err := encodeXLSX(links)
		if err != nil {
			return nil, fmt.Errorf("failed to build workbook: %w", err)
		}
		return &Export{Filename: "links.xlsx", MIMEType: MIMETypeXLSX, Content: content}, nil

	case FormatCSV:
		content, err := encodeCSV(links)
		if err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
		return &Export{Filename: "links.csv", MIMEType: MIMETypeCSV, Content: content}, nil

	case FormatMarkdown:
		var b strings.Builder
		b.WriteString("# Link list\n\n")
		for i, link := range links {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("- ")
			b.WriteString(link)
		}
		return &Export{Filename: "links.md", MIMEType: MIMETypeMarkdown, Content: []byte(b.String())}, nil

	case FormatText, "text":
		return &Export{Filename: "links.txt", MIMEType: MIMETypeText, Content: []byte(strings.Join(links, "\n"))}, nil

	case FormatJSON:
		content, err := encodeJSON(links)
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return &Export{Filename: "links.json", MIMEType: MIMETypeJSON, Content: content}, nil
	}

	return nil, apperr.Validation("unsupported export format: %s", format)
}

// EncodeBase64 is Encode for text-only boundaries.
func EncodeBase64(links []string, format string) (*EncodedExport, error) {
	exp, err := Encode(links, format)
	if err != nil {
		return nil, err
	}
	return &EncodedExport{
		Filename:      exp.Filename,
		MIMEType:      exp.MIMEType,
		ContentBase64: base64.StdEncoding.EncodeToString(exp.Content),
	}, nil
}

func encodeXLSX(links []string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Links"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", "url"); err != nil {
		return nil, err
	}
	for i, link := range links {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, link); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCSV(links []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write([]string{"url"}); err != nil {
		return nil, err
	}
	for _, link := range links {
		if err := w.Write([]string{link}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(links []string) ([]byte, error) {
	if links == nil {
		links = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Links []string `json:"links"`
	}{links}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
