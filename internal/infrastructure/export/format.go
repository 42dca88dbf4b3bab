// Package export renders the production report as PDF and XLSX documents.
package export

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formatter prints grouped numbers, e.g. 1,617.67
type formatter struct {
	p *message.Printer
}

func newFormatter() formatter {
	return formatter{p: message.NewPrinter(language.English)}
}

func (f formatter) money(d decimal.Decimal) string {
	return f.p.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func (f formatter) plain(d decimal.Decimal) string {
	return f.p.Sprint(number.Decimal(d.InexactFloat64()))
}

// percent formats a fraction such as 0.08 as 8.0%
func (f formatter) percent(d decimal.Decimal) string {
	return f.p.Sprintf("%v%%", number.Decimal(d.Shift(2).InexactFloat64(), number.Scale(1)))
}
