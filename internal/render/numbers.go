package render

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Numbers formats values for a locale and currency symbol.
type Numbers struct {
	p        *message.Printer
	currency string
}

// NewNumbers returns a formatter for locale, such as "en" or "pt-BR". An
// unparseable locale falls back to English.
func NewNumbers(locale, currency string) Numbers {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return Numbers{p: message.NewPrinter(tag), currency: currency}
}

// Money formats d with two decimals, locale grouping and the currency
// symbol. The digits come from the decimal itself, so large totals stay
// exact.
func (n Numbers) Money(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	group, point := n.separators()
	return n.withCurrency(sign + groupDigits(whole, group) + point + frac)
}

// separators returns the locale's digit-group and decimal separators.
func (n Numbers) separators() (group, point string) {
	group, point = ",", "."
	// "1,000" and "1.5" in English, "1.000" and "1,5" in Brazilian Portuguese.
	if r := []rune(n.p.Sprintf("%d", 1000)); len(r) == 5 {
		group = string(r[1])
	}
	if r := []rune(n.p.Sprintf("%.1f", 1.5)); len(r) == 3 {
		point = string(r[1])
	}
	return group, point
}

func groupDigits(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Count formats the integer part of d with locale grouping.
func (n Numbers) Count(d decimal.Decimal) string {
	return n.p.Sprintf("%d", d.IntPart())
}

// Percent formats d as a percentage with one decimal.
func (n Numbers) Percent(d decimal.Decimal) string {
	return n.p.Sprintf("%.1f", d.InexactFloat64()) + "%"
}

// Change formats a signed percentage change, such as "+15.2%".
func (n Numbers) Change(d decimal.Decimal) string {
	s := n.Percent(d)
	if d.IsPositive() {
		s = "+" + s
	}
	return s
}

// Compact shortens large values with an SI suffix, so 28500 becomes "28.5K".
// Values under a thousand are formatted in full.
func (n Numbers) Compact(d decimal.Decimal, money bool) string {
	f := d.InexactFloat64()
	if math.Abs(f) < 1000 {
		if money {
			return n.Money(d)
		}
		return n.Count(d)
	}
	v, prefix := humanize.ComputeSI(f)
	s := n.p.Sprintf("%.1f", v) + strings.ToUpper(prefix)
	if money {
		return n.withCurrency(s)
	}
	return s
}

func (n Numbers) withCurrency(s string) string {
	if n.currency == "" {
		return s
	}
	return n.currency + " " + s
}
