package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// OrderForm holds the customer details collected before handing the order
// off to WhatsApp. No order record is persisted; the order exists only as
// the formatted message.
type OrderForm struct {
	Name     string `json:"name" validate:"required"`
	Mobile   string `json:"mobile" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// FormatINR formats a rupee amount with Indian digit grouping:
// the last three digits form one group, every group before that has two
// digits (1234567 renders as "12,34,567").
func FormatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]

		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + tail
	}

	if neg {
		return "-" + digits
	}
	return digits
}

// BuildOrderMessage renders the prefilled WhatsApp message for a product
// order. The model line is included only when the product has a model number.
func BuildOrderMessage(p Product, form OrderForm) string {
	var b strings.Builder
	b.WriteString("Hi, I want to buy:\n\n")
	b.WriteString("Product: " + p.Title + "\n")
	if p.ModelNo != nil && *p.ModelNo != "" {
		b.WriteString("Model: " + *p.ModelNo + "\n")
	}
	b.WriteString("Price: ₹" + FormatINR(p.Price) + "\n")
	fmt.Fprintf(&b, "Quantity: %d\n\n", form.Quantity)
	b.WriteString("Customer Details:\n")
	b.WriteString("Name: " + form.Name + "\n")
	b.WriteString("Mobile: " + form.Mobile + "\n")
	b.WriteString("Address: " + form.Address)
	return b.String()
}

// WhatsAppLink builds the wa.me deep link with the message prefilled.
// Spaces are percent-encoded so the link survives messaging apps that do
// not decode "+" in query strings.
func WhatsAppLink(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}
