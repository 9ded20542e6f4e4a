// Package client est le miroir Go du front : un client API typé, le
// contrôleur de panier optimiste et le flux de vérification de paiement.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"blinkeyit_back_end/internal/models"
)

// Client appelle l'API Blinkey It et traduit les statuts HTTP en
// taxonomie d'erreurs exploitable par l'UI.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken pose le jeton Bearer utilisé sur tous les appels suivants.
func (c *Client) SetToken(token string) { c.token = token }

// envelope est la forme de toutes les réponses du serveur.
type envelope struct {
	Message string          `json:"message"`
	Error   bool            `json:"error"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusConflict:
		return KindConflict
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindInvalidArgument
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// do exécute l'appel et décode data dans out (si non nil). Les pannes
// réseau deviennent KindUnavailable : l'UI les traite comme réessayables.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Kind: KindUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Kind: KindUnavailable, Status: resp.StatusCode, Message: "invalid server response"}
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{
			Kind:    kindForStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: env.Message,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{Kind: KindUnavailable, Status: resp.StatusCode, Message: "invalid server response"}
		}
	}
	return nil
}

// ================== ENDPOINTS PANIER ==================

func (c *Client) AddCartItem(ctx context.Context, productID string) (*models.CartLine, error) {
	var line models.CartLine
	err := c.do(ctx, http.MethodPost, "/api/cart/create", map[string]string{"productId": productID}, &line)
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (c *Client) GetCart(ctx context.Context) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := c.do(ctx, http.MethodGet, "/api/cart/get", nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) UpdateCartQty(ctx context.Context, lineID string, qty int) error {
	return c.do(ctx, http.MethodPut, "/api/cart/update-qty",
		map[string]interface{}{"_id": lineID, "qty": qty}, nil)
}

func (c *Client) DeleteCartItem(ctx context.Context, lineID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/delete-cart-item",
		map[string]string{"_id": lineID}, nil)
}

// ================== ENDPOINTS COMMANDE / PAIEMENT ==================

func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/api/order/order-list", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) VerifyPayment(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodPost, "/api/payment/verify",
		map[string]string{"sessionId": sessionID}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
