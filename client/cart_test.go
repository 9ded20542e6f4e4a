package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"blinkeyit_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeAPI reproduit le contrat du serveur panier/paiement en mémoire pour
// tester le contrôleur sans MongoDB ni Stripe.
type fakeAPI struct {
	mu    sync.Mutex
	lines map[string]*models.CartLine // clé = productId hex

	cartFetches  int
	orderFetches int
	verifyCalls  int
	verifyOK     bool
	verifyStatus int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		lines:        map[string]*models.CartLine{},
		verifyOK:     true,
		verifyStatus: http.StatusBadRequest,
	}
}

func writeEnvelope(w http.ResponseWriter, status int, message string, success bool, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": message,
		"error":   !success,
		"success": success,
		"data":    data,
	})
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/cart/create", func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			ProductID string `json:"productId"`
		}
		json.NewDecoder(r.Body).Decode(&input)

		f.mu.Lock()
		defer f.mu.Unlock()
		if _, exists := f.lines[input.ProductID]; exists {
			writeEnvelope(w, http.StatusConflict, "Item already in cart", false, nil)
			return
		}

		productOID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, "Invalid productId", false, nil)
			return
		}
		line := &models.CartLine{
			ID:       primitive.NewObjectID(),
			Product:  models.Product{ID: productOID, Name: "p", Price: 10},
			Quantity: 1,
		}
		f.lines[input.ProductID] = line
		writeEnvelope(w, http.StatusOK, "Item added successfully", true, line)
	})

	mux.HandleFunc("/api/cart/get", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cartFetches++
		list := []models.CartLine{}
		for _, line := range f.lines {
			list = append(list, *line)
		}
		writeEnvelope(w, http.StatusOK, "Cart items", true, list)
	})

	mux.HandleFunc("/api/cart/update-qty", func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			ID  string `json:"_id"`
			Qty int    `json:"qty"`
		}
		json.NewDecoder(r.Body).Decode(&input)

		if input.Qty < models.CartQtyMin || input.Qty > models.CartQtyMax {
			writeEnvelope(w, http.StatusBadRequest, "Quantity must be between 1 and 100", false, nil)
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		for _, line := range f.lines {
			if line.ID.Hex() == input.ID {
				line.Quantity = input.Qty
				writeEnvelope(w, http.StatusOK, "Cart updated", true, nil)
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, "Cart item not found", false, nil)
	})

	mux.HandleFunc("/api/cart/delete-cart-item", func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			ID string `json:"_id"`
		}
		json.NewDecoder(r.Body).Decode(&input)

		f.mu.Lock()
		defer f.mu.Unlock()
		for productID, line := range f.lines {
			if line.ID.Hex() == input.ID {
				delete(f.lines, productID)
				writeEnvelope(w, http.StatusOK, "Item removed", true, nil)
				return
			}
		}
		writeEnvelope(w, http.StatusNotFound, "Cart item not found", false, nil)
	})

	mux.HandleFunc("/api/order/order-list", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.orderFetches++
		writeEnvelope(w, http.StatusOK, "Order list", true, []models.Order{})
	})

	mux.HandleFunc("/api/payment/verify", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.verifyCalls++
		if !f.verifyOK {
			writeEnvelope(w, f.verifyStatus, "Payment not completed", false, nil)
			return
		}
		order := models.Order{
			ID:            primitive.NewObjectID(),
			OrderID:       "ORD-test",
			PaymentStatus: models.PaymentStatusPaid,
			CreatedAt:     time.Now(),
		}
		writeEnvelope(w, http.StatusOK, "Payment verified successfully", true, order)
	})

	return mux
}

func newTestController(t *testing.T) (*CartController, *fakeAPI, *Client) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	cl := New(srv.URL)
	return NewCartController(cl), api, cl
}

func TestAddThenListShowsOneLine(t *testing.T) {
	cc, _, _ := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	lines := cc.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Product.ID.Hex() != productID || lines[0].Quantity != 1 {
		t.Fatalf("unexpected line: product=%s qty=%d", lines[0].Product.ID.Hex(), lines[0].Quantity)
	}
	if !cc.InCart(productID) {
		t.Fatal("InCart should be true after add")
	}
}

func TestDoubleAddIsConflict(t *testing.T) {
	cc, _, _ := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := cc.Add(ctx, productID)
	if err == nil {
		t.Fatal("second Add should fail")
	}
	if !IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}
	if len(cc.Lines()) != 1 {
		t.Fatalf("conflict must not create a second line, got %d", len(cc.Lines()))
	}
}

func TestIncreaseUsesDisplayedQuantity(t *testing.T) {
	cc, api, _ := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Quantité 3 posée côté serveur, reflétée par le refetch
	api.mu.Lock()
	api.lines[productID].Quantity = 3
	api.mu.Unlock()
	if err := cc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if err := cc.Increase(ctx, productID); err != nil {
		t.Fatalf("Increase: %v", err)
	}
	if got := cc.Quantity(productID); got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}
}

func TestDecreaseAtOneDeletesLine(t *testing.T) {
	cc, _, _ := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := cc.Decrease(ctx, productID); err != nil {
		t.Fatalf("Decrease: %v", err)
	}

	if cc.InCart(productID) {
		t.Fatal("line should be removed, not set to zero")
	}
	if got := cc.Quantity(productID); got != 0 {
		t.Fatalf("expected quantity 0 after removal, got %d", got)
	}
}

func TestDecreaseAboveOneUpdatesQuantity(t *testing.T) {
	cc, api, _ := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	api.mu.Lock()
	api.lines[productID].Quantity = 3
	api.mu.Unlock()
	cc.Refresh(ctx)

	if err := cc.Decrease(ctx, productID); err != nil {
		t.Fatalf("Decrease: %v", err)
	}
	if got := cc.Quantity(productID); got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestQuantityBounds(t *testing.T) {
	cc, _, cl := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	lineID := cc.Lines()[0].ID.Hex()

	if err := cl.UpdateCartQty(ctx, lineID, 0); !IsInvalidArgument(err) {
		t.Fatalf("qty=0 should be InvalidArgument, got %v", err)
	}
	if err := cl.UpdateCartQty(ctx, lineID, 101); !IsInvalidArgument(err) {
		t.Fatalf("qty=101 should be InvalidArgument, got %v", err)
	}
	if err := cl.UpdateCartQty(ctx, lineID, 100); err != nil {
		t.Fatalf("qty=100 should be accepted, got %v", err)
	}
}

func TestDeleteAlreadyDeletedLineIsTolerated(t *testing.T) {
	cc, api, _ := newTestController(t)
	ctx := context.Background()
	productID := primitive.NewObjectID().Hex()

	if err := cc.Add(ctx, productID); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// La ligne disparaît côté serveur (autre onglet) sans que la liste
	// locale soit rafraîchie
	api.mu.Lock()
	delete(api.lines, productID)
	api.mu.Unlock()

	if err := cc.Decrease(ctx, productID); err != nil {
		t.Fatalf("Decrease on a vanished line should not fail: %v", err)
	}
	if cc.InCart(productID) {
		t.Fatal("line should be gone after refresh")
	}
}

func TestUnavailableServer(t *testing.T) {
	cl := New("http://127.0.0.1:1")
	cc := NewCartController(cl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := cc.Refresh(ctx)
	if !IsUnavailable(err) {
		t.Fatalf("expected Unavailable, got %v", err)
	}
}
