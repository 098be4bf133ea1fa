package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// documentDate is stamped into every PDF so identical input yields identical bytes.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const creator = "resume-builder"

// Encode serializes a laid-out document to PDF bytes. Text is drawn with the
// core Helvetica fonts, so runes outside cp1252 come out as ".".
func Encode(doc RenderedDocument) ([]byte, error) {
	if len(doc.Pages) == 0 {
		return nil, fmt.Errorf("encode: document has no pages")
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCreator(creator, false)
	pdf.SetTitle(doc.Title, true)

	// Core fonts are cp1252; the translator maps runes such as the bullet.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch op.Kind {
			case OpRect:
				pdf.SetFillColor(op.Color.R, op.Color.G, op.Color.B)
				pdf.Rect(op.X, flipY(op.Y+op.H), op.W, op.H, "F")
			case OpLine:
				pdf.SetDrawColor(op.Color.R, op.Color.G, op.Color.B)
				pdf.SetLineWidth(op.LineWidth)
				pdf.Line(op.X, flipY(op.Y), op.X2, flipY(op.Y2))
			case OpText:
				pdf.SetFont(op.Font.Family, op.Font.Style, op.Font.Size)
				pdf.SetTextColor(op.Color.R, op.Color.G, op.Color.B)
				pdf.Text(op.X, flipY(op.Y), tr(op.Text))
			default:
				return nil, fmt.Errorf("encode: unknown op kind %d", op.Kind)
			}
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("encode: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode: output: %w", err)
	}
	return buf.Bytes(), nil
}

// flipY converts a bottom-origin y into FPDF's top-origin coordinates.
func flipY(y float64) float64 {
	return PageHeight - y
}
