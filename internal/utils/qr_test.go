package utils

import (
	"bytes"
	"testing"
)

func TestGenerateOrderTrackingQR(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://shop.test")

	png, err := GenerateOrderTrackingQR("ORD-abc-123")
	if err != nil {
		t.Fatalf("GenerateOrderTrackingQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("QR output should be a PNG")
	}
}
