package client

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"blinkeyit_back_end/internal/models"
)

// SessionKey est la clé sous laquelle l'identifiant de session Stripe est
// gardé entre le départ vers Checkout et le retour sur la page de
// confirmation.
const SessionKey = "stripeSessionId"

// SessionStore est l'équivalent local-storage du navigateur : un petit
// fichier JSON clé/valeur.
type SessionStore struct {
	mu   sync.Mutex
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) load() map[string]string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	values := map[string]string{}
	if json.Unmarshal(data, &values) != nil {
		return map[string]string{}
	}
	return values
}

func (s *SessionStore) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *SessionStore) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()[key]
}

func (s *SessionStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.load()
	values[key] = value
	return s.save(values)
}

func (s *SessionStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.load()
	delete(values, key)
	return s.save(values)
}

// PaymentVerifier rejoue la logique de la page de confirmation : une
// seule vérification en vol à la fois, et l'identifiant stocké n'est
// consommé qu'après un succès confirmé — un échec le laisse en place pour
// qu'un retry reste possible (la vérification serveur est idempotente).
type PaymentVerifier struct {
	api   *Client
	store *SessionStore
	cart  *CartController

	// refetch des commandes après succès, injecté par l'app
	refreshOrders func(ctx context.Context) error

	mu         sync.Mutex
	processing bool
}

func NewPaymentVerifier(api *Client, store *SessionStore, cart *CartController, refreshOrders func(ctx context.Context) error) *PaymentVerifier {
	return &PaymentVerifier{
		api:           api,
		store:         store,
		cart:          cart,
		refreshOrders: refreshOrders,
	}
}

// VerifyPending vérifie la session stockée, s'il y en a une.
//
// Retourne (nil, nil) quand il n'y a rien à vérifier : pas de session
// stockée, ou vérification déjà en cours (re-render de la page). En cas
// de succès l'identifiant est supprimé et panier + commandes sont
// refetchés exactement une fois chacun.
func (v *PaymentVerifier) VerifyPending(ctx context.Context) (*models.Order, error) {
	v.mu.Lock()
	if v.processing {
		v.mu.Unlock()
		return nil, nil
	}
	v.processing = true
	v.mu.Unlock()

	defer func() {
		v.mu.Lock()
		v.processing = false
		v.mu.Unlock()
	}()

	sessionID := v.store.Get(SessionKey)
	if sessionID == "" {
		return nil, nil
	}

	order, err := v.api.VerifyPayment(ctx, sessionID)
	if err != nil {
		// L'identifiant reste stocké : l'utilisateur peut réessayer.
		return nil, err
	}

	if err := v.store.Delete(SessionKey); err != nil {
		return order, err
	}

	if err := v.cart.Refresh(ctx); err != nil {
		return order, err
	}
	if v.refreshOrders != nil {
		if err := v.refreshOrders(ctx); err != nil {
			return order, err
		}
	}
	return order, nil
}
