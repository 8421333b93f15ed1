// Package format renders prices and dates for the storefront's locale.
package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var italian = message.NewPrinter(language.Italian)

// EUR renders an amount in euro the way the storefront displays prices,
// with a comma decimal separator. Example: EUR(24) => "€ 24,00".
func EUR(amount float64) string {
	return italian.Sprintf("€ %.2f", amount)
}

// Quantity renders a line quantity with its unit marker, e.g. "×2".
func Quantity(qty int) string {
	return italian.Sprintf("×%d", qty)
}

// Date renders a timestamp in a locale-friendly short form.
func Date(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "it", "":
		return t.Format("02/01/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}
