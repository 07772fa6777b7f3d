package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockroom/backoffice/internal/infrastructure/auth"
	"github.com/stockroom/backoffice/internal/infrastructure/config"
	"github.com/stockroom/backoffice/internal/infrastructure/persistence"
	"github.com/stockroom/backoffice/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Error   bool            `json:"error"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Details *struct {
		Count int64 `json:"count"`
		Pages int   `json:"pages"`
	} `json:"details"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func (a *apiClient) do(method, path string, body any) (int, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// created posts body and returns the new record's id
func (a *apiClient) created(path string, body any) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, code, env.Message)
	var rec struct {
		ID string `json:"_id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &rec))
	require.NotEmpty(a.t, rec.ID)
	return rec.ID
}

func (a *apiClient) login(login, password string) {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/login", map[string]string{"login": login, "password": password})
	require.Equal(a.t, http.StatusOK, code, env.Message)
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(a.t, res.AccessToken)
	a.token = res.AccessToken
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	seeded, err := SeedAdmin(context.Background(), db, testutil.TestTenantID(), config.AdminConfig{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secret1",
	}, zap.NewNop())
	require.NoError(t, err)
	require.True(t, seeded)

	srv := New(Deps{
		Database: &persistence.Database{DB: db},
		JWT: auth.NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-for-api-tests-0123456789",
			AccessTokenExpiration: time.Hour,
			Issuer:                "test",
		}),
		Blacklist: auth.NewInMemoryTokenBlacklist(),
		Logger:    zap.NewNop(),
		Version:   "test",
	})
	t.Cleanup(srv.Close)

	return &apiClient{t: t, engine: srv.Engine}
}

func TestSeedAdmin_SkipsExistingAccount(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	cfg := config.AdminConfig{Username: "admin", Email: "admin@example.com", Password: "secret1"}

	created, err := SeedAdmin(context.Background(), db, testutil.TestTenantID(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(context.Background(), db, testutil.TestTenantID(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, created)

	created, err = SeedAdmin(context.Background(), db, testutil.TestTenantID(), config.AdminConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestAPI_RequiresToken(t *testing.T) {
	api := newTestServer(t)

	code, env := api.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.True(t, env.Error)

	code, _ = api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAPI_LoginRejectsBadPassword(t *testing.T) {
	api := newTestServer(t)

	code, env := api.do(http.MethodPost, "/api/auth/login", map[string]string{"login": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "ERR_UNAUTHORIZED", env.Code)
}

func TestAPI_LedgerFlow(t *testing.T) {
	api := newTestServer(t)
	api.login("admin@example.com", "secret1")

	code, env := api.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "admin", me.Username)

	categoryID := api.created("/api/categories", map[string]any{"name": "Phones"})
	brandID := api.created("/api/brands", map[string]any{"name": "Acme"})
	firmID := api.created("/api/firms", map[string]any{"name": "Wholesale Ltd"})
	productID := api.created("/api/products", map[string]any{
		"name":       "Handset",
		"categoryId": categoryID,
		"brandId":    brandID,
		"price":      10,
	})

	api.created("/api/purchases", map[string]any{
		"productId": productID,
		"firmId":    firmID,
		"quantity":  5,
		"price":     6,
	})
	api.created("/api/sells", map[string]any{
		"productId": productID,
		"sellerId":  me.ID,
		"quantity":  2,
		"price":     10,
	})

	t.Run("stock follows the ledger", func(t *testing.T) {
		code, env := api.do(http.MethodGet, "/api/products/"+productID, nil)
		require.Equal(t, http.StatusOK, code)
		var p struct {
			Quantity      int `json:"quantity"`
			PurchaseCount int `json:"purchaseCount"`
			SoldCount     int `json:"soldCount"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, 3, p.Quantity)
		assert.Equal(t, 5, p.PurchaseCount)
		assert.Equal(t, 2, p.SoldCount)
	})

	t.Run("overselling is rejected", func(t *testing.T) {
		code, env := api.do(http.MethodPost, "/api/sells", map[string]any{
			"productId": productID,
			"sellerId":  me.ID,
			"quantity":  4,
			"price":     10,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "ERR_INSUFFICIENT_STOCK", env.Code)
	})

	t.Run("sell list filters by product", func(t *testing.T) {
		code, env := api.do(http.MethodGet, "/api/sells?limit=0&product_id="+productID, nil)
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, env.Details)
		assert.Equal(t, int64(1), env.Details.Count)
		assert.Equal(t, 1, env.Details.Pages)
	})

	t.Run("rollup prices profit from purchase cost", func(t *testing.T) {
		code, env := api.do(http.MethodGet, "/api/sells/rollup?category_id="+categoryID, nil)
		require.Equal(t, http.StatusOK, code, env.Message)
		var r struct {
			Totals struct {
				Count    int     `json:"count"`
				Quantity int     `json:"quantity"`
				Revenue  float64 `json:"revenue"`
				Profit   float64 `json:"profit"`
			} `json:"totals"`
			PerSeller []struct {
				ID string `json:"_id"`
			} `json:"perSeller"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &r))
		assert.Equal(t, 1, r.Totals.Count)
		assert.Equal(t, 2, r.Totals.Quantity)
		assert.InDelta(t, 20.0, r.Totals.Revenue, 0.0001)
		assert.InDelta(t, 8.0, r.Totals.Profit, 0.0001)
		require.Len(t, r.PerSeller, 1)
		assert.Equal(t, me.ID, r.PerSeller[0].ID)
	})

	t.Run("category summary", func(t *testing.T) {
		code, env := api.do(http.MethodGet, "/api/categories/"+categoryID+"/summary", nil)
		require.Equal(t, http.StatusOK, code, env.Message)
		var s struct {
			ProductCount int64   `json:"productCount"`
			TotalSpent   float64 `json:"totalSpent"`
			TotalGained  float64 `json:"totalGained"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &s))
		assert.Equal(t, int64(1), s.ProductCount)
		assert.InDelta(t, 30.0, s.TotalSpent, 0.0001)
		assert.InDelta(t, 20.0, s.TotalGained, 0.0001)
	})

	t.Run("referenced product cannot be deleted", func(t *testing.T) {
		code, env := api.do(http.MethodDelete, "/api/products/"+productID, nil)
		assert.Equal(t, http.StatusConflict, code)
		assert.True(t, env.Error)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		code, env := api.do(http.MethodGet, fmt.Sprintf("/api/categories/%s", testutil.NewTestUUID("missing")), nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "ERR_NOT_FOUND", env.Code)
	})
}

func TestAPI_UserWritesNeedAdmin(t *testing.T) {
	api := newTestServer(t)
	api.login("admin", "secret1")

	api.created("/api/users", map[string]any{
		"username": "clerk",
		"email":    "clerk@example.com",
		"password": "secret2",
	})

	clerk := &apiClient{t: t, engine: api.engine}
	clerk.login("clerk", "secret2")

	code, env := clerk.do(http.MethodPost, "/api/users", map[string]any{
		"username": "other",
		"email":    "other@example.com",
		"password": "secret3",
	})
	assert.Equal(t, http.StatusForbidden, code)
	assert.True(t, env.Error)

	code, _ = clerk.do(http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAPI_LogoutRevokesToken(t *testing.T) {
	api := newTestServer(t)
	api.login("admin", "secret1")

	code, _ := api.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, code)

	code, env := api.do(http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", env.Code)
}
