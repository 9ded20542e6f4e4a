package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func findIndex(t *testing.T, models []mongo.IndexModel, firstKey string) mongo.IndexModel {
	t.Helper()
	for _, m := range models {
		keys, ok := m.Keys.(bson.D)
		if !ok || len(keys) == 0 {
			continue
		}
		if keys[0].Key == firstKey {
			return m
		}
	}
	t.Fatalf("no index starting with key %q", firstKey)
	return mongo.IndexModel{}
}

func TestCartCompoundIndexIsUnique(t *testing.T) {
	specs := indexSpecs()

	var compound *mongo.IndexModel
	for _, m := range specs["cartproducts"] {
		keys, ok := m.Keys.(bson.D)
		if ok && len(keys) == 2 && keys[0].Key == "userId" && keys[1].Key == "productId" {
			compound = &m
			break
		}
	}
	if compound == nil {
		t.Fatal("cartproducts must carry a (userId, productId) compound index")
	}
	if compound.Options == nil || compound.Options.Unique == nil || !*compound.Options.Unique {
		t.Fatal("the (userId, productId) index must be unique: it is what turns a duplicate-add race into a conflict")
	}
}

// Deux finalisations concurrentes de la même session de paiement (verify et
// webhook passent toutes deux le lookup avant d'insérer) doivent se résoudre
// en base : une seule insertion peut réussir.
func TestOrderSessionIndexIsPartialUnique(t *testing.T) {
	specs := indexSpecs()
	idx := findIndex(t, specs["orders"], "sessionId")

	if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
		t.Fatal("orders.sessionId index must be unique to arbitrate the verify/webhook race")
	}

	filter, ok := idx.Options.PartialFilterExpression.(bson.D)
	if !ok || len(filter) == 0 {
		t.Fatal("orders.sessionId uniqueness must be partial: cash-on-delivery orders have no sessionId")
	}
	if filter[0].Key != "sessionId" {
		t.Fatalf("partial filter must target sessionId, got %q", filter[0].Key)
	}
	cond, ok := filter[0].Value.(bson.D)
	if !ok || len(cond) == 0 || cond[0].Key != "$exists" || cond[0].Value != true {
		t.Fatalf("partial filter must be {sessionId: {$exists: true}}, got %+v", filter[0].Value)
	}
}

func TestOrderIDIndexIsUnique(t *testing.T) {
	specs := indexSpecs()
	idx := findIndex(t, specs["orders"], "orderId")
	if idx.Options == nil || idx.Options.Unique == nil || !*idx.Options.Unique {
		t.Fatal("orders.orderId index must be unique")
	}
}
