package pdf

import "github.com/med-tools/clinreport/pkg/models/domain"

// RGB is a 3-component color triple.
type RGB [3]int

var (
	colorWhite     = RGB{255, 255, 255}
	colorBlack     = RGB{0, 0, 0}
	colorGray      = RGB{100, 100, 100}
	colorBarTrack  = RGB{220, 220, 220}
	colorAlertRed  = RGB{239, 68, 68}
	colorAmber     = RGB{245, 158, 11}
	colorGreen     = RGB{16, 185, 129}
	colorBoxRed    = RGB{253, 242, 242}
	colorDarkRed   = RGB{185, 28, 28}
	defaultPrimary = RGB{21, 94, 99} // teal
)

// Fonts form a closed set; anything else falls back to Helvetica.
const (
	FontHelvetica = "Helvetica"
	FontTimes     = "Times"
	FontCourier   = "Courier"
)

// Style carries the caller-tunable appearance of a generated document.
type Style struct {
	PrimaryColor   RGB
	SecondaryColor RGB
	Font           string
}

// DefaultStyle returns the teal-primary Helvetica defaults.
func DefaultStyle() Style {
	return Style{
		PrimaryColor:   defaultPrimary,
		SecondaryColor: colorGray,
		Font:           FontHelvetica,
	}
}

func (s Style) fontFamily() string {
	switch s.Font {
	case FontTimes, FontCourier, FontHelvetica:
		return s.Font
	default:
		return FontHelvetica
	}
}

// RiskColor maps a risk level to its display color. The mapping is keyed
// to the same threshold rule as domain.RiskLevelForScore.
func RiskColor(level domain.RiskLevel) RGB {
	switch level {
	case domain.RiskHigh:
		return colorAlertRed
	case domain.RiskModerate:
		return colorAmber
	default:
		return colorGreen
	}
}
