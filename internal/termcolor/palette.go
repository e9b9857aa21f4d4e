package termcolor

import (
	"github.com/phyten/emptymon/internal/colorutil"
	"github.com/phyten/emptymon/internal/model"
)

// minContrast は truecolor 前景色と端末背景の最低コントラスト比。
const minContrast = colorutil.DefaultMinRatio

type methodColor struct {
	basic int
	dark  int
	light int
	rgb   colorutil.RGB
}

var methodColors = map[model.MethodName]methodColor{
	model.Awake:      {basic: 5, dark: 177, light: 127, rgb: colorutil.RGB{R: 192, G: 132, B: 252}},
	model.Start:      {basic: 2, dark: 114, light: 28, rgb: colorutil.RGB{R: 74, G: 222, B: 128}},
	model.Update:     {basic: 6, dark: 80, light: 30, rgb: colorutil.RGB{R: 34, G: 211, B: 238}},
	model.LateUpdate: {basic: 4, dark: 75, light: 25, rgb: colorutil.RGB{R: 96, G: 165, B: 250}},
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// PathStyle は file/location 列。
func PathStyle() Style {
	return Style{Bold: true}
}

func LineStyle() Style {
	return Style{Dim: true}
}

// MethodStyle picks the colour for a method column. Unknown names are left
// uncoloured. Truecolor values are pushed to a readable contrast against the
// scheme's background.
func MethodStyle(name model.MethodName, scheme Scheme, profile Profile) Style {
	c, ok := methodColors[name]
	if !ok {
		return Style{}
	}
	switch profile {
	case ProfileTrueColor:
		fg := colorutil.EnsureContrast(c.rgb, scheme.Background(), minContrast)
		rgb := [3]uint8{fg.R, fg.G, fg.B}
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		idx := c.dark
		if scheme == SchemeLight {
			idx = c.light
		}
		return Style{FG256: &idx}
	default:
		color := c.basic
		return Style{FGBasic: &color, Bold: scheme != SchemeLight}
	}
}
