package utils

import (
	"strings"
	"testing"

	"blinkeyit_back_end/internal/models"
)

func TestOrderConfirmationHTML(t *testing.T) {
	order := models.Order{
		OrderID:  "ORD-abc-123",
		TotalAmt: 250,
		ListItems: []models.OrderItem{
			{Name: "Basmati Rice 1kg", Quantity: 2, Price: 100},
			{Name: "Milk 1L", Quantity: 1, Price: 50},
		},
	}

	html := GenerateOrderConfirmationHTML(order, "Asha")

	for _, want := range []string{"ORD-abc-123", "Asha", "Basmati Rice 1kg", "Milk 1L", "₹250.00"} {
		if !strings.Contains(html, want) {
			t.Fatalf("confirmation HTML missing %q", want)
		}
	}
}

func TestOrderConfirmationHTMLFallbackName(t *testing.T) {
	html := GenerateOrderConfirmationHTML(models.Order{OrderID: "ORD-x"}, "")
	if !strings.Contains(html, "Hi there,") {
		t.Fatal("empty user name should fall back to a generic greeting")
	}
}
