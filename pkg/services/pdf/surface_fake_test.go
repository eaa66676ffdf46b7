package pdf

import "strings"

// fakeSurface records drawing calls so renderers can be asserted on
// without a PDF backend. A4 geometry, three-ish millimeters per
// character for wrapping.
type placedText struct {
	x, y  float64
	text  string
	style TextStyle
	page  int
}

type placedRect struct {
	x, y, w, h float64
	fill       RGB
	page       int
}

type placedImage struct {
	x, y, w, h float64
	size       int
	page       int
}

type fakeSurface struct {
	texts   []placedText
	rects   []placedRect
	images  []placedImage
	pages   int
	current int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{pages: 1, current: 1}
}

func (f *fakeSurface) PlaceText(x, y float64, text string, style TextStyle) {
	f.texts = append(f.texts, placedText{x: x, y: y, text: text, style: style, page: f.current})
}

func (f *fakeSurface) PlaceRect(x, y, w, h float64, fill RGB) {
	f.rects = append(f.rects, placedRect{x: x, y: y, w: w, h: h, fill: fill, page: f.current})
}

func (f *fakeSurface) PlaceImage(x, y, w, h float64, png []byte) {
	if len(png) == 0 {
		return
	}
	f.images = append(f.images, placedImage{x: x, y: y, w: w, h: h, size: len(png), page: f.current})
}

func (f *fakeSurface) WrapText(text string, maxWidth float64, _ TextStyle) []string {
	limit := int(maxWidth / 2)
	if limit < 1 {
		limit = 1
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		if line == "" {
			line = word
			continue
		}
		if len(line)+1+len(word) > limit {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func (f *fakeSurface) PageWidth() float64 { return 210 }
func (f *fakeSurface) PageHeight() float64 { return 297 }

func (f *fakeSurface) NewPage() {
	f.pages++
	f.current = f.pages
}

func (f *fakeSurface) PageCount() int { return f.pages }
func (f *fakeSurface) UsePage(n int) { f.current = n }

var _ Surface = (*fakeSurface)(nil)

func (f *fakeSurface) textLines() []string {
	lines := make([]string, len(f.texts))
	for i, t := range f.texts {
		lines[i] = t.text
	}
	return lines
}

func (f *fakeSurface) hasText(s string) bool {
	for _, t := range f.texts {
		if t.text == s {
			return true
		}
	}
	return false
}

func (f *fakeSurface) findText(s string) (placedText, bool) {
	for _, t := range f.texts {
		if t.text == s {
			return t, true
		}
	}
	return placedText{}, false
}

func (f *fakeSurface) textIndex(s string) int {
	for i, t := range f.texts {
		if t.text == s {
			return i
		}
	}
	return -1
}
