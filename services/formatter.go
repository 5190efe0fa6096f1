package services

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders case data values for document output. Grouping follows
// the configured locale rather than the ambient runtime locale, so the same
// template produces the same text on every host.
type Formatter struct {
	printer        *message.Printer
	currencySymbol string
}

// NewFormatter creates a Formatter for the given BCP 47 locale tag and
// currency symbol. An unparseable locale falls back to English.
func NewFormatter(locale, currencySymbol string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Formatter{
		printer:        message.NewPrinter(tag),
		currencySymbol: currencySymbol,
	}
}

// DefaultFormatter returns the formatter used when no firm preference is set.
func DefaultFormatter() Formatter {
	return NewFormatter("en", "$")
}

// Amount formats a monetary amount with locale grouping and up to two
// decimal places, trailing zeros trimmed (750000 -> "750,000",
// 76.71 -> "76.71").
func (f Formatter) Amount(v float64) string {
	return f.printer.Sprint(number.Decimal(v,
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}

// Currency formats an amount with the configured currency symbol prefix.
func (f Formatter) Currency(v float64) string {
	return f.currencySymbol + f.Amount(v)
}

// Percent formats a rate value with a trailing percent sign.
func (f Formatter) Percent(v float64) string {
	return f.printer.Sprint(number.Decimal(v,
		number.MaxFractionDigits(3),
		number.MinFractionDigits(0),
	)) + "%"
}

// LongDate formats a date in long month/day/year form.
func (f Formatter) LongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
