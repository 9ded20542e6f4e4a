package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Les chemins de validation répondent avant tout accès MongoDB : ils se
// testent donc sans base, avec un user_id posé dans le context.
func newCartRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	asUser := func(c *gin.Context) {
		c.Set("user_id", "64f000000000000000000001")
		c.Next()
	}

	r.POST("/cart/create", asUser, AddToCartItem)
	r.PUT("/cart/update-qty", asUser, UpdateCartItemQty)
	r.DELETE("/cart/delete-cart-item", asUser, DeleteCartItem)

	// Routes sans user_id pour les chemins 401
	r.PUT("/anon/update-qty", UpdateCartItemQty)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartRequiresProductID(t *testing.T) {
	r := newCartRouter()

	if w := doJSON(t, r, http.MethodPost, "/cart/create", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing productId: expected 400, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/cart/create", `{"productId":"not-hex"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed productId: expected 400, got %d", w.Code)
	}
}

func TestUpdateQtyRejectsOutOfRange(t *testing.T) {
	r := newCartRouter()
	lineID := "64f000000000000000000009"

	cases := []struct {
		name string
		qty  string
	}{
		{"zero", "0"},
		{"negative", "-1"},
		{"above max", "101"},
	}
	for _, tc := range cases {
		body := `{"_id":"` + lineID + `","qty":` + tc.qty + `}`
		if w := doJSON(t, r, http.MethodPut, "/cart/update-qty", body); w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestUpdateQtyRequiresLineID(t *testing.T) {
	r := newCartRouter()

	if w := doJSON(t, r, http.MethodPut, "/cart/update-qty", `{"qty":2}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing _id: expected 400, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/cart/update-qty", `{"_id":"nope","qty":2}`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed _id: expected 400, got %d", w.Code)
	}
}

func TestDeleteCartItemValidation(t *testing.T) {
	r := newCartRouter()

	if w := doJSON(t, r, http.MethodDelete, "/cart/delete-cart-item", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing _id: expected 400, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/cart/delete-cart-item", `{"_id":"zz"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed _id: expected 400, got %d", w.Code)
	}
}

func TestCartHandlersRejectMissingUser(t *testing.T) {
	r := newCartRouter()

	w := doJSON(t, r, http.MethodPut, "/anon/update-qty", `{"_id":"64f000000000000000000009","qty":2}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user_id, got %d", w.Code)
	}
}
