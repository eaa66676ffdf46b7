package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Alignment of a placed text run relative to its x coordinate.
const (
	AlignLeft   = "L"
	AlignRight  = "R"
	AlignCenter = "C"
)

// TextStyle describes one text placement. Zero values mean left-aligned
// black text at the default body size.
type TextStyle struct {
	Size  float64
	Bold  bool
	Color RGB
	Align string
}

// Surface is an append-only paginated canvas. Coordinates are page-local
// millimeters with the origin at the top-left corner. Renderers draw
// through this interface only, which keeps them testable without a real
// PDF backend.
type Surface interface {
	PlaceText(x, y float64, text string, style TextStyle)
	PlaceRect(x, y, w, h float64, fill RGB)
	PlaceImage(x, y, w, h float64, png []byte)
	// WrapText word-wraps text to maxWidth using the font metrics of the
	// given style. It is the single pre-measuring point the layout engine
	// relies on for page-break decisions, so it must be deterministic.
	WrapText(text string, maxWidth float64, style TextStyle) []string
	PageWidth() float64
	PageHeight() float64
	NewPage()
	PageCount() int
	// UsePage re-targets drawing at an already produced page; used only by
	// the footer pass after all content is placed.
	UsePage(n int)
}

const defaultFontSize = 11

// document implements Surface on top of an fpdf A4 portrait page stack.
type document struct {
	pdf    *fpdf.Fpdf
	family string
	images int
}

func newDocument(style Style, generatedDate string) *document {
	p := fpdf.New("P", "mm", "A4", "")
	// The layout engine owns every page break; renderers may deliberately
	// overrun the nominal bottom margin.
	p.SetAutoPageBreak(false, 0)
	p.SetCreationDate(creationDate(generatedDate))
	p.SetModificationDate(creationDate(generatedDate))
	p.SetFont(style.fontFamily(), "", defaultFontSize)
	p.AddPage()
	return &document{pdf: p, family: style.fontFamily()}
}

// creationDate pins the document metadata clock to the report date so
// identical inputs produce byte-identical output.
func creationDate(generatedDate string) time.Time {
	if t, err := time.Parse("2006-01-02", generatedDate); err == nil {
		return t.UTC()
	}
	return time.Unix(0, 0).UTC()
}

func (d *document) setFont(st TextStyle) {
	fontStyle := ""
	if st.Bold {
		fontStyle = "B"
	}
	size := st.Size
	if size == 0 {
		size = defaultFontSize
	}
	d.pdf.SetFont(d.family, fontStyle, size)
}

func (d *document) PlaceText(x, y float64, text string, st TextStyle) {
	d.setFont(st)
	d.pdf.SetTextColor(st.Color[0], st.Color[1], st.Color[2])
	switch st.Align {
	case AlignRight:
		x -= d.pdf.GetStringWidth(text)
	case AlignCenter:
		x -= d.pdf.GetStringWidth(text) / 2
	}
	d.pdf.Text(x, y, text)
}

func (d *document) PlaceRect(x, y, w, h float64, fill RGB) {
	d.pdf.SetFillColor(fill[0], fill[1], fill[2])
	d.pdf.Rect(x, y, w, h, "F")
}

func (d *document) PlaceImage(x, y, w, h float64, png []byte) {
	if len(png) == 0 {
		return
	}
	d.images++
	name := fmt.Sprintf("img-%d", d.images)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func (d *document) WrapText(text string, maxWidth float64, st TextStyle) []string {
	d.setFont(st)
	return d.pdf.SplitText(text, maxWidth)
}

func (d *document) PageWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w
}

func (d *document) PageHeight() float64 {
	_, h := d.pdf.GetPageSize()
	return h
}

func (d *document) NewPage() {
	d.pdf.AddPage()
}

func (d *document) PageCount() int {
	return d.pdf.PageCount()
}

func (d *document) UsePage(n int) {
	d.pdf.SetPage(n)
}

// encode serializes the finished page stack. Either a complete document
// comes back or an error; there is no partial output.
func (d *document) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}
