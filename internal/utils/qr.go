package utils

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

// GenerateOrderTrackingQR encode l'URL de suivi d'une commande en PNG,
// joint à l'e-mail de confirmation.
func GenerateOrderTrackingQR(orderID string) ([]byte, error) {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:5173"
	}
	url := fmt.Sprintf("%s/order/%s", base, orderID)
	return qrcode.Encode(url, qrcode.Medium, 256)
}
