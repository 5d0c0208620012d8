// Package whatsapp builds the order hand-off message and deep link. The
// wa.me chat is the entire confirmation channel: no webhook or callback ever
// comes back into the app.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"robomart/internal/domain"
)

// Message formats the multi-line order summary sent to store staff.
func Message(o domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛒 *New Order*\nOrder ID: #%s\n\n*Items:*\n", o.OrderNumber)
	for _, it := range o.Items() {
		fmt.Fprintf(&b, "%s x%d - ₹%s\n", it.Name, it.Quantity, it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Subtotal:* ₹%s\n", o.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "*Shipping:* ₹%s\n", o.ShippingFee.StringFixed(2))
	fmt.Fprintf(&b, "*Total:* ₹%s\n\n", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "*Customer Details:*\nName: %s\nPhone: %s\n", o.CustomerName, o.CustomerPhone)
	if o.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	}
	fmt.Fprintf(&b, "\n*Delivery Address:*\n%s\n", o.ShippingAddress)
	if o.Notes != "" {
		fmt.Fprintf(&b, "\n*Notes:* %s\n", o.Notes)
	}
	b.WriteString("\nPlease confirm this order and provide payment instructions.")
	return b.String()
}

// Link builds the https://wa.me deep link. The number is reduced to digits;
// anything like "+91 98765 43210" becomes 919876543210.
func Link(number, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", Digits(number), url.QueryEscape(message))
}

func Digits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
