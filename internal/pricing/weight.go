package pricing

import (
	"strconv"
	"strings"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
)

// DefaultWeightKg is assumed for lines whose size label carries no
// usable weight. Apparel-style labels ("Large", "Standard") fall back
// here too, which conflates "no weight info" with "exactly 1kg" — kept
// as-is because shipping totals depend on it.
const DefaultWeightKg = 1.0

// ParseWeight converts a free-text size label ("250g", "1.5 kg") into
// kilograms. It is total: any input yields a finite non-negative
// number, never an error.
func ParseWeight(sizeLabel string) float64 {
	s := strings.ToLower(strings.TrimSpace(sizeLabel))
	if s == "" {
		return DefaultWeightKg
	}

	var num strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			num.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(num.String(), 64)
	if err != nil {
		return DefaultWeightKg
	}

	if isGrams(s) {
		return value / 1000
	}
	return value
}

// isGrams reports whether the label denotes grams: it mentions grams
// and does not mention kilograms. "kilogram" must be checked
// explicitly since it does not contain the "kg" token.
func isGrams(s string) bool {
	if strings.Contains(s, "kg") || strings.Contains(s, "kilogram") {
		return false
	}
	return strings.Contains(s, "g") || strings.Contains(s, "gram")
}

// TotalWeight sums the parsed per-line weight times quantity across
// the cart, in kilograms. Pure; safe to recompute on every change.
func TotalWeight(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += ParseWeight(item.SizeLabel) * float64(item.Quantity)
	}
	return total
}
