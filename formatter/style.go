package formatter

import (
	"github.com/fatih/color"
)

// palette holds the styles of one Printer. Styles of a plain palette never
// emit escape codes, regardless of the terminal.
type palette struct {
	number   *color.Color
	variable *color.Color
	function *color.Color
	operator *color.Color
	literal  *color.Color

	errorStyle   *color.Color
	kindStyle    *color.Color
	lineStyle    *color.Color
	sourceStyle  *color.Color
	messageStyle *color.Color
}

func newPalette(colored bool) palette {
	p := palette{
		number:   color.New(color.FgCyan),
		variable: color.New(color.FgGreen),
		function: color.New(color.FgYellow, color.Bold),
		operator: color.New(color.FgHiBlue),
		literal:  color.New(color.FgMagenta),

		errorStyle:   color.New(color.FgRed, color.Bold),
		kindStyle:    color.New(color.FgYellow, color.Bold),
		lineStyle:    color.New(color.FgHiBlue, color.Bold),
		sourceStyle:  color.New(color.FgCyan, color.Bold),
		messageStyle: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{
		p.number, p.variable, p.function, p.operator, p.literal,
		p.errorStyle, p.kindStyle, p.lineStyle, p.sourceStyle, p.messageStyle,
	} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
