package checkout

import (
	"strings"
	"testing"

	"github.com/aquamart/aquamart-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

func TestBuildWhatsAppURL(t *testing.T) {
	url := BuildWhatsAppURL("+964 770 123 4567", "مرحبا")
	if !strings.HasPrefix(url, "https://wa.me/9647701234567?text=") {
		t.Fatalf("unexpected url %q", url)
	}
	if strings.Contains(url, " ") {
		t.Fatalf("expected escaped message, got %q", url)
	}

	if url := BuildWhatsAppURL("   ", "hi"); url != "" {
		t.Fatalf("expected empty url without digits, got %q", url)
	}
}

func TestOrderSummaryMessage(t *testing.T) {
	order := &models.Order{
		Number:       "AQ-260829-K7Q2M",
		CustomerName: "زبون",
		Phone:        "07701112233",
		Address:      "بغداد، الكرادة",
		Total:        decimal.RequireFromString("2500"),
		Items: []models.OrderItem{
			{NameAr: "سمكة جوبي", UnitPrice: decimal.RequireFromString("1000"), Qty: 2},
			{NameAr: "نبتة أنوبياس", UnitPrice: decimal.RequireFromString("500"), Qty: 1},
		},
	}

	msg := OrderSummaryMessage(order, "د.ع")
	for _, want := range []string{"AQ-260829-K7Q2M", "سمكة جوبي", "× 2", "2500 د.ع", "07701112233", "بغداد"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}
