package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
)

// BuildWhatsAppURL renders a wa.me deep link that opens a chat with the store
// number, prefilled with the order summary.
func BuildWhatsAppURL(number, message string) string {
	digits := sanitizePhone(number)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// OrderSummaryMessage renders the Arabic order summary the shopper sends to
// the store over WhatsApp.
func OrderSummaryMessage(order *models.Order, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "طلب جديد رقم %s\n", order.Number)
	b.WriteString("-------------------\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s × %d  %s %s\n", item.NameAr, item.Qty, item.UnitPrice, currency)
	}
	b.WriteString("-------------------\n")
	fmt.Fprintf(&b, "الإجمالي: %s %s\n", order.Total, currency)
	fmt.Fprintf(&b, "الاسم: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "الهاتف: %s\n", order.Phone)
	fmt.Fprintf(&b, "العنوان: %s", order.Address)
	return b.String()
}

func sanitizePhone(number string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(number) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
