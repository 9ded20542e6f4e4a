package client

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
)

func newTestVerifier(t *testing.T) (*PaymentVerifier, *SessionStore, *fakeAPI, *int) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	cl := New(srv.URL)
	cc := NewCartController(cl)
	store := NewSessionStore(filepath.Join(t.TempDir(), "storage.json"))

	orderRefetches := 0
	verifier := NewPaymentVerifier(cl, store, cc, func(ctx context.Context) error {
		_, err := cl.GetOrders(ctx)
		if err == nil {
			orderRefetches++
		}
		return err
	})
	return verifier, store, api, &orderRefetches
}

func TestVerifySuccessConsumesSessionAndRefetchesOnce(t *testing.T) {
	verifier, store, api, orderRefetches := newTestVerifier(t)
	ctx := context.Background()

	if err := store.Set(SessionKey, "sess_123"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	order, err := verifier.VerifyPending(ctx)
	if err != nil {
		t.Fatalf("VerifyPending: %v", err)
	}
	if order == nil || order.OrderID != "ORD-test" {
		t.Fatalf("unexpected order: %+v", order)
	}

	if got := store.Get(SessionKey); got != "" {
		t.Fatalf("session id should be consumed, still have %q", got)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.verifyCalls != 1 {
		t.Fatalf("expected exactly 1 verify call, got %d", api.verifyCalls)
	}
	if api.cartFetches != 1 {
		t.Fatalf("expected exactly 1 cart refetch, got %d", api.cartFetches)
	}
	if *orderRefetches != 1 {
		t.Fatalf("expected exactly 1 order refetch, got %d", *orderRefetches)
	}
}

func TestVerifyWithoutStoredSessionDoesNothing(t *testing.T) {
	verifier, _, api, _ := newTestVerifier(t)

	order, err := verifier.VerifyPending(context.Background())
	if err != nil {
		t.Fatalf("VerifyPending: %v", err)
	}
	if order != nil {
		t.Fatalf("expected no order, got %+v", order)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if api.verifyCalls != 0 {
		t.Fatalf("no verification call expected, got %d", api.verifyCalls)
	}
}

func TestVerifyFailureKeepsStoredSession(t *testing.T) {
	verifier, store, api, _ := newTestVerifier(t)
	ctx := context.Background()

	api.mu.Lock()
	api.verifyOK = false
	api.mu.Unlock()

	store.Set(SessionKey, "sess_123")

	_, err := verifier.VerifyPending(ctx)
	if err == nil {
		t.Fatal("VerifyPending should surface the failure")
	}

	// L'identifiant reste en place : l'utilisateur peut réessayer et la
	// vérification serveur est idempotente.
	if got := store.Get(SessionKey); got != "sess_123" {
		t.Fatalf("session id must survive a failed verification, got %q", got)
	}

	// Retry après rétablissement
	api.mu.Lock()
	api.verifyOK = true
	api.mu.Unlock()

	order, err := verifier.VerifyPending(ctx)
	if err != nil {
		t.Fatalf("retry should succeed: %v", err)
	}
	if order == nil {
		t.Fatal("retry should return the order")
	}
	if got := store.Get(SessionKey); got != "" {
		t.Fatalf("session id should be consumed after retry, got %q", got)
	}
}

func TestVerifyIsSingleFlight(t *testing.T) {
	verifier, store, api, _ := newTestVerifier(t)
	ctx := context.Background()

	store.Set(SessionKey, "sess_123")

	// Simule des re-renders concurrents de la page de confirmation
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verifier.VerifyPending(ctx)
		}()
	}
	wg.Wait()

	api.mu.Lock()
	calls := api.verifyCalls
	api.mu.Unlock()

	// Au plus un appel peut passer le verrou tant qu'une vérification est
	// en vol ; après consommation de l'identifiant il n'y a plus rien à
	// vérifier.
	if calls > 1 {
		t.Fatalf("expected at most 1 verify call, got %d", calls)
	}
	if store.Get(SessionKey) != "" && calls > 0 {
		t.Fatal("session id should be consumed when a call went through")
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "storage.json"))

	if got := store.Get(SessionKey); got != "" {
		t.Fatalf("empty store should return empty string, got %q", got)
	}
	if err := store.Set(SessionKey, "sess_abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := store.Get(SessionKey); got != "sess_abc" {
		t.Fatalf("Get after Set: %q", got)
	}
	if err := store.Delete(SessionKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := store.Get(SessionKey); got != "" {
		t.Fatalf("Get after Delete: %q", got)
	}
}
