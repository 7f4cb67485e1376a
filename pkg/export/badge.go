package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const badgeRule = "========================"

// Badge is a small identity card: a title followed by "Label: value" lines.
type Badge struct {
	Title  string
	Fields []BadgeField
}

// BadgeField is one labelled line on a badge.
type BadgeField struct {
	Label string
	Value string
}

// TextBadgeExporter renders badges as plain text framed by rules.
type TextBadgeExporter struct{}

// NewTextBadgeExporter constructs a text badge renderer.
func NewTextBadgeExporter() *TextBadgeExporter {
	return &TextBadgeExporter{}
}

// Render produces the text badge.
func (e *TextBadgeExporter) Render(b Badge) ([]byte, error) {
	if b.Title == "" {
		return nil, fmt.Errorf("badge requires a title")
	}
	var sb strings.Builder
	sb.WriteString(badgeRule + "\n")
	sb.WriteString("  " + b.Title + "\n")
	sb.WriteString(badgeRule + "\n")
	for _, f := range b.Fields {
		fmt.Fprintf(&sb, "%s: %s\n", f.Label, f.Value)
	}
	sb.WriteString(badgeRule + "\n")
	return []byte(sb.String()), nil
}

// PDFExporter renders badges onto a credit-card sized PDF page.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a single-page PDF for the badge.
func (e *PDFExporter) Render(b Badge) ([]byte, error) {
	if b.Title == "" {
		return nil, fmt.Errorf("badge requires a title")
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 54, Ht: 86},
	})
	pdf.SetMargins(5, 5, 5)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	pdf.Rect(2, 2, pageW-4, pageH-4, "D")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, strings.ToUpper(b.Title), "B", 1, "C", false, 0, "")
	pdf.Ln(2)

	for _, f := range b.Fields {
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(24, 5, f.Label+":", "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.MultiCell(0, 5, f.Value, "", "", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
