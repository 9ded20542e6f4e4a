package client

import (
	"context"
	"sync"

	"blinkeyit_back_end/internal/models"
)

// CartController reflète le panier serveur côté client. La liste locale
// n'est jamais patchée de façon optimiste : chaque mutation réussie
// déclenche un refetch complet et l'appartenance au panier est re-dérivée
// de la liste rafraîchie.
type CartController struct {
	api *Client

	mu    sync.Mutex
	lines []models.CartLine
}

func NewCartController(api *Client) *CartController {
	return &CartController{api: api}
}

// Refresh recharge la liste depuis le serveur.
func (cc *CartController) Refresh(ctx context.Context) error {
	lines, err := cc.api.GetCart(ctx)
	if err != nil {
		return err
	}
	cc.mu.Lock()
	cc.lines = lines
	cc.mu.Unlock()
	return nil
}

// Lines retourne un instantané de la liste locale.
func (cc *CartController) Lines() []models.CartLine {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	snapshot := make([]models.CartLine, len(cc.lines))
	copy(snapshot, cc.lines)
	return snapshot
}

// lineFor cherche la ligne d'un produit par balayage linéaire de la liste
// locale — c'est la seule source de vérité pour l'état affiché.
func (cc *CartController) lineFor(productID string) (models.CartLine, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	for _, line := range cc.lines {
		if line.Product.ID.Hex() == productID {
			return line, true
		}
	}
	return models.CartLine{}, false
}

// InCart indique si le produit a une ligne dans la liste locale.
func (cc *CartController) InCart(productID string) bool {
	_, ok := cc.lineFor(productID)
	return ok
}

// Quantity retourne la quantité locale du produit, 0 s'il est absent.
func (cc *CartController) Quantity(productID string) int {
	line, ok := cc.lineFor(productID)
	if !ok {
		return 0
	}
	return line.Quantity
}

// Add crée la ligne (quantité 1) puis refetch. Un produit déjà présent
// renvoie Conflict : l'UI doit passer par Increase.
func (cc *CartController) Add(ctx context.Context, productID string) error {
	if _, err := cc.api.AddCartItem(ctx, productID); err != nil {
		return err
	}
	return cc.Refresh(ctx)
}

// Increase incrémente depuis la quantité affichée, sans relire le serveur
// d'abord : deux clics rapides peuvent s'écraser (dernier écrit gagne),
// tolérance assumée.
func (cc *CartController) Increase(ctx context.Context, productID string) error {
	line, ok := cc.lineFor(productID)
	if !ok {
		return &APIError{Kind: KindNotFound, Message: "product is not in the cart"}
	}
	if err := cc.api.UpdateCartQty(ctx, line.ID.Hex(), line.Quantity+1); err != nil {
		return err
	}
	return cc.Refresh(ctx)
}

// Decrease décrémente, ou supprime la ligne à quantité 1 : une quantité
// zéro n'est jamais envoyée au serveur.
func (cc *CartController) Decrease(ctx context.Context, productID string) error {
	line, ok := cc.lineFor(productID)
	if !ok {
		return &APIError{Kind: KindNotFound, Message: "product is not in the cart"}
	}

	if line.Quantity <= 1 {
		// La suppression d'une ligne déjà disparue n'est pas une erreur
		// pour le flux client.
		if err := cc.api.DeleteCartItem(ctx, line.ID.Hex()); err != nil && !IsNotFound(err) {
			return err
		}
		return cc.Refresh(ctx)
	}

	if err := cc.api.UpdateCartQty(ctx, line.ID.Hex(), line.Quantity-1); err != nil {
		return err
	}
	return cc.Refresh(ctx)
}

// Remove supprime la ligne quelle que soit sa quantité.
func (cc *CartController) Remove(ctx context.Context, productID string) error {
	line, ok := cc.lineFor(productID)
	if !ok {
		return nil
	}
	if err := cc.api.DeleteCartItem(ctx, line.ID.Hex()); err != nil && !IsNotFound(err) {
		return err
	}
	return cc.Refresh(ctx)
}
