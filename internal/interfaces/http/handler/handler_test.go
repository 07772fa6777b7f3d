package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockroom/backoffice/internal/application/catalog"
	identityapp "github.com/stockroom/backoffice/internal/application/identity"
	ledgerapp "github.com/stockroom/backoffice/internal/application/ledger"
	reportapp "github.com/stockroom/backoffice/internal/application/report"
	"github.com/stockroom/backoffice/internal/domain/report"
	"github.com/stockroom/backoffice/internal/domain/shared"
	"github.com/stockroom/backoffice/internal/infrastructure/auth"
	"github.com/stockroom/backoffice/internal/interfaces/http/dto"
	"github.com/stockroom/backoffice/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var (
	testTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	testUserID   = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
)

// withClaims simulates the JWT middleware
func withClaims(tenantID, userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{TenantID: tenantID.String(), UserID: userID.String(), Username: "owner"}
		claims.ID = "jti-1"
		c.Set(middleware.JWTClaimsKey, claims)
		c.Set(middleware.JWTTenantIDKey, claims.TenantID)
		c.Set(middleware.JWTUserIDKey, claims.UserID)
		c.Next()
	}
}

func newTestEngine(authenticated bool) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	if authenticated {
		engine.Use(withClaims(testTenantID, testUserID))
	}
	return engine
}

func doJSON(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Error   bool                  `json:"error"`
	Data    json.RawMessage       `json:"data"`
	Details *dto.Details          `json:"details"`
	Message string                `json:"message"`
	Code    string                `json:"code"`
	Fields  []dto.ValidationError `json:"fields"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

// MockCategoryService implements resourceService for categories
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, tenantID uuid.UUID, req catalogapp.CategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalogapp.CategoryResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]catalogapp.CategoryResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req catalogapp.CategoryRequest) (*catalogapp.CategoryResponse, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func newCategoryEngine(svc *MockCategoryService) *gin.Engine {
	h := NewResourceHandler[catalogapp.CategoryRequest, catalogapp.CategoryResponse](svc)
	engine := newTestEngine(true)
	engine.GET("/api/categories", h.List)
	engine.POST("/api/categories", h.Create)
	engine.GET("/api/categories/:id", h.GetByID)
	engine.PUT("/api/categories/:id", h.Update)
	engine.DELETE("/api/categories/:id", h.Delete)
	return engine
}

func TestResourceHandler_List(t *testing.T) {
	svc := new(MockCategoryService)
	items := []catalogapp.CategoryResponse{{ID: uuid.New(), Name: "Tea"}, {ID: uuid.New(), Name: "Coffee"}}
	svc.On("List", mock.Anything, testTenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.PageSize == 2 && f.Page == 2 && f.Search == "te"
	})).Return(items, int64(5), nil)

	rec := doJSON(newCategoryEngine(svc), http.MethodGet, "/api/categories?limit=2&page=2&search=te", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Error)
	require.NotNil(t, env.Details)
	assert.Equal(t, dto.Details{Count: 5, Page: 2, Pages: 3, Limit: 2}, *env.Details)
	var got []catalogapp.CategoryResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
	svc.AssertExpectations(t)
}

func TestResourceHandler_ListEverything(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("List", mock.Anything, testTenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Unlimited()
	})).Return(nil, int64(0), nil)

	rec := doJSON(newCategoryEngine(svc), http.MethodGet, "/api/categories?limit=0", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, 1, env.Details.Pages)
}

func TestResourceHandler_ListBadQuery(t *testing.T) {
	svc := new(MockCategoryService)

	rec := doJSON(newCategoryEngine(svc), http.MethodGet, "/api/categories?limit=-1", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeValidation, decode(t, rec).Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceHandler_Create(t *testing.T) {
	svc := new(MockCategoryService)
	created := &catalogapp.CategoryResponse{ID: uuid.New(), Name: "Tea"}
	svc.On("Create", mock.Anything, testTenantID, catalogapp.CategoryRequest{Name: "Tea"}).Return(created, nil)

	rec := doJSON(newCategoryEngine(svc), http.MethodPost, "/api/categories", map[string]string{"name": "Tea"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), created.ID.String())
}

func TestResourceHandler_CreateValidation(t *testing.T) {
	svc := new(MockCategoryService)
	engine := newCategoryEngine(svc)

	t.Run("missing name", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPost, "/api/categories", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decode(t, rec)
		assert.True(t, env.Error)
		assert.Equal(t, dto.ErrCodeValidation, env.Code)
		require.Len(t, env.Fields, 1)
		assert.Equal(t, "name", env.Fields[0].Field)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := doJSON(engine, http.MethodPost, "/api/categories", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decode(t, rec).Code)
	})
}

func TestResourceHandler_ErrorMapping(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", shared.NotFound("Category"), http.StatusNotFound, dto.ErrCodeNotFound, "Category not found"},
		{"wrapped not found", fmt.Errorf("load: %w", shared.NotFound("Category")), http.StatusNotFound, dto.ErrCodeNotFound, "Category not found"},
		{"conflict", shared.Conflict("Category has products"), http.StatusConflict, dto.ErrCodeConflict, "Category has products"},
		{"stock", shared.InsufficientStock("Tea", 1, 2), http.StatusUnprocessableEntity, dto.ErrCodeInsufficientStock, ""},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal, "Server error"},
		{"server error code", shared.ErrServerError, http.StatusInternalServerError, dto.ErrCodeInternal, "Server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCategoryService)
			svc.On("GetByID", mock.Anything, testTenantID, id).Return(nil, tt.err)

			rec := doJSON(newCategoryEngine(svc), http.MethodGet, "/api/categories/"+id.String(), nil)

			assert.Equal(t, tt.status, rec.Code)
			env := decode(t, rec)
			assert.True(t, env.Error)
			assert.Equal(t, tt.code, env.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, env.Message)
			}
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestResourceHandler_InvalidID(t *testing.T) {
	svc := new(MockCategoryService)

	rec := doJSON(newCategoryEngine(svc), http.MethodDelete, "/api/categories/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestResourceHandler_UpdateAndDelete(t *testing.T) {
	id := uuid.New()
	svc := new(MockCategoryService)
	svc.On("Update", mock.Anything, testTenantID, id, catalogapp.CategoryRequest{Name: "Green tea"}).
		Return(&catalogapp.CategoryResponse{ID: id, Name: "Green tea"}, nil)
	svc.On("Delete", mock.Anything, testTenantID, id).Return(nil)
	engine := newCategoryEngine(svc)

	rec := doJSON(engine, http.MethodPut, "/api/categories/"+id.String(), map[string]string{"name": "Green tea"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), "Green tea")

	rec = doJSON(engine, http.MethodDelete, "/api/categories/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"_id":"`+id.String()+`"}`, string(decode(t, rec).Data))
	svc.AssertExpectations(t)
}

func TestResourceHandler_RequiresClaims(t *testing.T) {
	svc := new(MockCategoryService)
	h := NewResourceHandler[catalogapp.CategoryRequest, catalogapp.CategoryResponse](svc)
	engine := newTestEngine(false)
	engine.GET("/api/categories", h.List)

	rec := doJSON(engine, http.MethodGet, "/api/categories", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, decode(t, rec).Code)
}

// MockReportServices implements the summary and rollup services
type MockReportServices struct {
	mock.Mock
}

func (m *MockReportServices) CategorySummary(ctx context.Context, tenantID, categoryID uuid.UUID) (*reportapp.CategorySummaryResponse, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.CategorySummaryResponse), args.Error(1)
}

func (m *MockReportServices) Rollup(ctx context.Context, tenantID uuid.UUID, f report.SellFilter) (*reportapp.RollupResponse, error) {
	args := m.Called(ctx, tenantID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reportapp.RollupResponse), args.Error(1)
}

func newReportEngine(svc *MockReportServices) *gin.Engine {
	h := NewReportHandler(svc, svc)
	engine := newTestEngine(true)
	engine.GET("/api/categories/:id/summary", h.CategorySummary)
	engine.GET("/api/sells/rollup", h.SellRollup)
	return engine
}

func TestReportHandler_CategorySummary(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		svc := new(MockReportServices)
		svc.On("CategorySummary", mock.Anything, testTenantID, id).
			Return(&reportapp.CategorySummaryResponse{ProductCount: 3}, nil)

		rec := doJSON(newReportEngine(svc), http.MethodGet, "/api/categories/"+id.String()+"/summary", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, string(decode(t, rec).Data), `"productCount":3`)
	})

	t.Run("missing category", func(t *testing.T) {
		svc := new(MockReportServices)
		svc.On("CategorySummary", mock.Anything, testTenantID, id).Return(nil, shared.NotFound("Category"))

		rec := doJSON(newReportEngine(svc), http.MethodGet, "/api/categories/"+id.String()+"/summary", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decode(t, rec)
		assert.True(t, env.Error)
		assert.Equal(t, "Category not found", env.Message)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockReportServices)
		svc.On("CategorySummary", mock.Anything, testTenantID, id).Return(nil, errors.New("db down"))

		rec := doJSON(newReportEngine(svc), http.MethodGet, "/api/categories/"+id.String()+"/summary", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Server error", decode(t, rec).Message)
	})
}

func TestReportHandler_SellRollup(t *testing.T) {
	svc := new(MockReportServices)
	want := report.SellFilter{CategoryID: "c1", SellerID: "s1"}
	svc.On("Rollup", mock.Anything, testTenantID, want).Return(&reportapp.RollupResponse{}, nil)

	rec := doJSON(newReportEngine(svc), http.MethodGet, "/api/sells/rollup?category_id=c1&seller_id=+s1+&brand_id=", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

// MockPurchaseService implements purchaseService
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) Create(ctx context.Context, tenantID, userID uuid.UUID, req ledgerapp.PurchaseRequest) (*ledgerapp.PurchaseResponse, error) {
	args := m.Called(ctx, tenantID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) Update(ctx context.Context, tenantID, id uuid.UUID, req ledgerapp.PurchaseRequest) (*ledgerapp.PurchaseResponse, error) {
	args := m.Called(ctx, tenantID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ledgerapp.PurchaseResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.PurchaseResponse), args.Error(1)
}

func (m *MockPurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ledgerapp.PurchaseResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]ledgerapp.PurchaseResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func TestPurchaseHandler_CreateRecordsCaller(t *testing.T) {
	svc := new(MockPurchaseService)
	svc.On("Create", mock.Anything, testTenantID, testUserID, mock.MatchedBy(func(r ledgerapp.PurchaseRequest) bool {
		return r.Quantity == 4
	})).Return(&ledgerapp.PurchaseResponse{ID: uuid.New(), Quantity: 4}, nil)

	h := NewPurchaseHandler(svc)
	engine := newTestEngine(true)
	engine.POST("/api/purchases", h.Create)

	rec := doJSON(engine, http.MethodPost, "/api/purchases", `{"productId":"`+uuid.NewString()+`","quantity":4,"price":2.5}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}

func TestPurchaseHandler_FiltersPassThrough(t *testing.T) {
	svc := new(MockPurchaseService)
	svc.On("List", mock.Anything, testTenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["firm_id"] == "f1"
	})).Return([]ledgerapp.PurchaseResponse{}, int64(0), nil)

	h := NewPurchaseHandler(svc)
	engine := newTestEngine(true)
	engine.GET("/api/purchases", h.List)

	rec := doJSON(engine, http.MethodGet, "/api/purchases?firm_id=f1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

// MockAuthService implements authService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, input identityapp.LoginInput) (*identityapp.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identityapp.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, tenantID, userID uuid.UUID) (*identityapp.UserResponse, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserResponse), args.Error(1)
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, identityapp.LoginInput{Login: "owner", Password: "secret1"}).
		Return(&identityapp.LoginResult{AccessToken: "tok", TokenType: "Bearer", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	svc.On("Login", mock.Anything, identityapp.LoginInput{Login: "owner", Password: "wrong"}).
		Return(nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password"))

	h := NewAuthHandler(svc)
	engine := newTestEngine(false)
	engine.POST("/api/auth/login", h.Login)

	rec := doJSON(engine, http.MethodPost, "/api/auth/login", LoginRequest{Login: "owner", Password: "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"accessToken":"tok"`)

	rec = doJSON(engine, http.MethodPost, "/api/auth/login", LoginRequest{Login: "owner", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid username or password", decode(t, rec).Message)

	rec = doJSON(engine, http.MethodPost, "/api/auth/login", map[string]string{"login": "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Logout", mock.Anything, mock.MatchedBy(func(in identityapp.LogoutInput) bool {
		return in.JTI == "jti-1" && in.TenantID == testTenantID && in.UserID == testUserID
	})).Return(nil)
	svc.On("CurrentUser", mock.Anything, testTenantID, testUserID).
		Return(&identityapp.UserResponse{ID: testUserID, Username: "owner"}, nil)

	h := NewAuthHandler(svc)
	engine := newTestEngine(true)
	engine.POST("/api/auth/logout", h.Logout)
	engine.GET("/api/auth/me", h.Me)

	rec := doJSON(engine, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"error":false}`, rec.Body.String())

	rec = doJSON(engine, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decode(t, rec).Data), `"username":"owner"`)
	svc.AssertExpectations(t)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	engine := gin.New()
	engine.GET("/ok", NewHealthHandler(stubPinger{}, "1.0.0").Health)
	engine.GET("/down", NewHealthHandler(stubPinger{err: errors.New("refused")}, "1.0.0").Health)

	rec := doJSON(engine, http.MethodGet, "/ok", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = doJSON(engine, http.MethodGet, "/down", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.NotContains(t, rec.Body.String(), "refused")
}
