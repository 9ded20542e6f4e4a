package models

import "testing"

func TestPriceAfterDiscount(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"negative discount ignored", 100, -5, 100},
		{"ten percent", 200, 10, 180},
		{"full discount", 50, 100, 0},
	}

	for _, tc := range cases {
		p := Product{Price: tc.price, Discount: tc.discount}
		if got := p.PriceAfterDiscount(); got != tc.want {
			t.Errorf("%s: got %.2f, want %.2f", tc.name, got, tc.want)
		}
	}
}
