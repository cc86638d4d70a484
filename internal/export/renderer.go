package export

import (
	"fmt"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Renderer turns a prepared document into PDF bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
}

// PDFRenderer renders through the wkhtmltopdf binary, which must be on
// PATH.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	gen, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("init pdf generator: %w", err)
	}
	gen.Orientation.Set(wkhtmltopdf.OrientationLandscape)
	gen.Dpi.Set(96)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(doc.HTML()))
	page.EnableLocalFileAccess.Set(false)
	gen.AddPage(page)

	if err := gen.Create(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return gen.Bytes(), nil
}

// Filename names an export file for one resource, e.g.
// "asset_export_20260831.pdf".
func Filename(resource string, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.pdf", resource, now.Format("20060102"))
}
