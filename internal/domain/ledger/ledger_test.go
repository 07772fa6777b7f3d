package ledger

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRef_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Ref
	}{
		{"bare id", `"u1"`, Ref{ID: "u1"}},
		{"embedded object", `{"_id":"u1"}`, Ref{ID: "u1"}},
		{"embedded object with name", `{"_id":"u1","name":"Ana"}`, Ref{ID: "u1", Name: "Ana"}},
		{"embedded user", `{"_id":"u1","username":"ana"}`, Ref{ID: "u1", Name: "ana"}},
		{"null", `null`, Ref{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Ref
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))
			assert.Equal(t, tt.want, r)
		})
	}

	t.Run("rejects numbers", func(t *testing.T) {
		var r Ref
		assert.Error(t, json.Unmarshal([]byte(`42`), &r))
	})
}

func TestRef_BothShapesResolveToSameID(t *testing.T) {
	var sells []struct {
		Seller Ref `json:"sellerId"`
	}
	payload := `[{"sellerId":{"_id":"u1"}},{"sellerId":"u1"}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &sells))

	require.Len(t, sells, 2)
	assert.Equal(t, "u1", ResolveID(sells[0].Seller))
	assert.Equal(t, ResolveID(sells[0].Seller), ResolveID(sells[1].Seller))
}

func TestRef_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Ref{ID: "u1"})
	require.NoError(t, err)
	assert.JSONEq(t, `"u1"`, string(b))

	b, err = json.Marshal(Ref{ID: "u1", Name: "Ana"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"u1","name":"Ana"}`, string(b))

	b, err = json.Marshal(Ref{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestResolveID(t *testing.T) {
	id := uuid.New()
	ref := Ref{ID: "r1"}

	assert.Equal(t, "", ResolveID(nil))
	assert.Equal(t, "r1", ResolveID(ref))
	assert.Equal(t, "r1", ResolveID(&ref))
	assert.Equal(t, "", ResolveID((*Ref)(nil)))
	assert.Equal(t, "s1", ResolveID("s1"))
	assert.Equal(t, id.String(), ResolveID(id))
	assert.Equal(t, id.String(), ResolveID(&id))
	assert.Equal(t, "", ResolveID(uuid.Nil))
	assert.Equal(t, "m1", ResolveID(map[string]any{"_id": "m1", "username": "x"}))
	assert.Equal(t, "m2", ResolveID(map[string]any{"id": "m2"}))
	assert.Equal(t, "", ResolveID(map[string]any{"name": "x"}))
	assert.Equal(t, "", ResolveID(42))
	assert.Equal(t, id.String(), ResolveID(RefTo(id)))
	assert.True(t, RefTo(uuid.Nil).IsZero())
}

func validSellInput() SellInput {
	return SellInput{
		ProductID: uuid.New(),
		BrandID:   uuid.New(),
		SellerID:  uuid.New(),
		Quantity:  2,
		Price:     decimal.NewFromInt(10),
	}
}

func TestNewSell(t *testing.T) {
	tenantID := uuid.New()

	t.Run("computes amount", func(t *testing.T) {
		s, err := NewSell(tenantID, validSellInput())
		require.NoError(t, err)
		assert.True(t, s.Amount().Equal(decimal.NewFromInt(20)))
		assert.Equal(t, tenantID, s.TenantID)
	})

	t.Run("requires a product", func(t *testing.T) {
		in := validSellInput()
		in.ProductID = uuid.Nil
		_, err := NewSell(tenantID, in)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrValidation)
		assert.Contains(t, err.Error(), "product")
	})

	t.Run("requires a seller", func(t *testing.T) {
		in := validSellInput()
		in.SellerID = uuid.Nil
		_, err := NewSell(tenantID, in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "seller")
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		in := validSellInput()
		in.Quantity = 0
		_, err := NewSell(tenantID, in)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		in := validSellInput()
		in.Price = decimal.NewFromInt(-1)
		_, err := NewSell(tenantID, in)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestNewPurchase(t *testing.T) {
	in := PurchaseInput{ProductID: uuid.New(), Quantity: 5, Price: decimal.NewFromInt(6)}
	p, err := NewPurchase(uuid.New(), uuid.New(), in)
	require.NoError(t, err)
	assert.True(t, p.Amount().Equal(decimal.NewFromInt(30)))

	in.ProductID = uuid.Nil
	_, err = NewPurchase(uuid.New(), uuid.New(), in)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestSellAdjustments(t *testing.T) {
	s, err := NewSell(uuid.New(), validSellInput())
	require.NoError(t, err)

	t.Run("create withdraws stock", func(t *testing.T) {
		adj := SellCreated(s)
		require.Len(t, adj, 1)
		assert.Equal(t, Adjustment{ProductID: s.ProductID, Quantity: -2, Sold: 2}, adj[0])
		assert.True(t, adj[0].Withdraws())
	})

	t.Run("delete restores stock", func(t *testing.T) {
		adj := SellDeleted(s)
		require.Len(t, adj, 1)
		assert.Equal(t, Adjustment{ProductID: s.ProductID, Quantity: 2, Sold: -2}, adj[0])
	})

	t.Run("same product applies the delta", func(t *testing.T) {
		after := *s
		after.Quantity = 5
		adj := SellRevised(s, &after)
		require.Len(t, adj, 1)
		assert.Equal(t, Adjustment{ProductID: s.ProductID, Quantity: -3, Sold: 3}, adj[0])
	})

	t.Run("unchanged quantity yields nothing", func(t *testing.T) {
		after := *s
		after.Price = decimal.NewFromInt(99)
		assert.Empty(t, SellRevised(s, &after))
	})

	t.Run("moving to another product reverts then applies", func(t *testing.T) {
		after := *s
		after.ProductID = uuid.New()
		after.Quantity = 4
		adj := SellRevised(s, &after)
		require.Len(t, adj, 2)
		assert.Equal(t, Adjustment{ProductID: s.ProductID, Quantity: 2, Sold: -2}, adj[0])
		assert.Equal(t, Adjustment{ProductID: after.ProductID, Quantity: -4, Sold: 4}, adj[1])
	})
}

func TestPurchaseAdjustments(t *testing.T) {
	p, err := NewPurchase(uuid.New(), uuid.New(), PurchaseInput{ProductID: uuid.New(), Quantity: 5, Price: decimal.NewFromInt(6)})
	require.NoError(t, err)

	assert.Equal(t, []Adjustment{{ProductID: p.ProductID, Quantity: 5, Purchased: 5}}, PurchaseCreated(p))
	assert.Equal(t, []Adjustment{{ProductID: p.ProductID, Quantity: -5, Purchased: -5}}, PurchaseDeleted(p))

	after := *p
	after.Quantity = 2
	adj := PurchaseRevised(p, &after)
	require.Len(t, adj, 1)
	assert.Equal(t, Adjustment{ProductID: p.ProductID, Quantity: -3, Purchased: -3}, adj[0])
	assert.True(t, adj[0].Withdraws())

	moved := *p
	moved.ProductID = uuid.New()
	adj = PurchaseRevised(p, &moved)
	require.Len(t, adj, 2)
	assert.Equal(t, moved.ProductID, adj[0].ProductID)
	assert.Equal(t, 5, adj[0].Quantity)
	assert.Equal(t, p.ProductID, adj[1].ProductID)
	assert.Equal(t, -5, adj[1].Quantity)
}
