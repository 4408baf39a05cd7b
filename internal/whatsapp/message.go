// Package whatsapp renders a placed order into the pre-filled message
// used for the checkout handoff and builds the wa.me deep link.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
)

const host = "https://wa.me"

// FormatOrderMessage produces the line-structured order summary sent
// through the messaging handoff. Currency values are rendered with two
// decimal places; a zero shipping fee renders as FREE.
func FormatOrderMessage(order *domain.Order, shippingFee decimal.Decimal, totalWeightKg float64) string {
	var b strings.Builder

	b.WriteString("*NEW ORDER*\n\n")
	fmt.Fprintf(&b, "Name: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", order.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n\n", order.CustomerPhone)

	b.WriteString("*Items:*\n")
	for _, item := range order.Items {
		size := ""
		if item.SizeLabel != "" {
			size = fmt.Sprintf(" (%s)", item.SizeLabel)
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "- %s%s x%d = %s\n", item.Name, size, item.Quantity, lineTotal.StringFixed(2))
	}

	fmt.Fprintf(&b, "\n*Shipping Address:*\n%s\n\n", order.ShippingAddress)

	subtotal := order.ItemsTotal()
	fmt.Fprintf(&b, "Subtotal: %s\n", subtotal.StringFixed(2))
	if shippingFee.IsZero() {
		b.WriteString("Shipping: FREE\n")
	} else {
		fmt.Fprintf(&b, "Shipping: %s\n", shippingFee.StringFixed(2))
	}
	fmt.Fprintf(&b, "*Total: %s*\n", order.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Total Weight: %.2f kg", totalWeightKg)

	return b.String()
}

// BuildLink constructs the deep link for the given destination number.
// Non-digit characters are stripped from the number; an empty or
// digit-free number yields "" and the caller falls back to the
// email-only confirmation path.
func BuildLink(destinationNumber, message string) string {
	digits := digitsOnly(destinationNumber)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s?text=%s", host, digits, url.QueryEscape(message))
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
