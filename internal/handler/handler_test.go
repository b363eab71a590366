package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/handler"
	"github.com/Priyanka-kale21/webhack/internal/model"
	"github.com/Priyanka-kale21/webhack/internal/repository"
	"github.com/Priyanka-kale21/webhack/internal/service"
)

// MockAuditService is a mock implementation of service.AuditService.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Run(ctx context.Context, req *model.AuditRequest) (*model.AuditResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditResponse), args.Error(1)
}

func (m *MockAuditService) Get(id string) (*model.AuditResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuditResponse), args.Error(1)
}

func (m *MockAuditService) List(p repository.Pagination) (*model.PaginatedResponse[model.AuditSummaryDTO], error) {
	args := m.Called(p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaginatedResponse[model.AuditSummaryDTO]), args.Error(1)
}

func newAuditRouter(svc service.AuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewAuditHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuditHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockAuditService)
		svc.On("Run", mock.Anything, &model.AuditRequest{URL: "https://example.com", MaxPages: 3}).
			Return(&model.AuditResponse{
				ID:      "a1",
				Input:   model.AuditInput{URL: "https://example.com", MaxPages: 3},
				Summary: model.AuditSummary{PagesScanned: 1},
				Reports: []model.PageReport{{URL: "https://example.com/", Status: 200}},
				Errors:  []model.CrawlErrorDTO{{URL: "https://example.com/x", Error: "connection refused"}},
			}, nil)

		rec := doRequest(newAuditRouter(svc), http.MethodPost, "/api/audit", `{"url":"https://example.com","maxPages":3}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode(t, rec)
		assert.Equal(t, "a1", resp["id"])
		assert.Equal(t, float64(3), resp["input"].(map[string]any)["maxPages"])
		errs := resp["errors"].([]any)
		require.Len(t, errs, 1)
		status, present := errs[0].(map[string]any)["status"]
		assert.True(t, present, "status is serialized even when absent")
		assert.Nil(t, status)
		svc.AssertExpectations(t)
	})

	t.Run("Missing URL", func(t *testing.T) {
		svc := new(MockAuditService)
		for _, body := range []string{`{}`, `{"maxPages":2}`, `not json`} {
			rec := doRequest(newAuditRouter(svc), http.MethodPost, "/api/audit", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, body)
			assert.Equal(t, "url is required", decode(t, rec)["error"])
		}
		svc.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("Body Too Large", func(t *testing.T) {
		svc := new(MockAuditService)
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 64)
			c.Next()
		})
		handler.NewAuditHandler(svc).RegisterRoutes(r.Group("/api"))

		body := `{"url":"https://example.com/` + strings.Repeat("a", 128) + `"}`
		rec := doRequest(r, http.MethodPost, "/api/audit", body)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "request body exceeds 64 bytes", decode(t, rec)["error"])
		svc.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	errorCases := []struct {
		name string
		err  error
		code int
	}{
		{"Blank URL", service.ErrURLRequired, http.StatusBadRequest},
		{"Invalid URL", crawler.ErrInvalidSeed, http.StatusBadRequest},
		{"Busy", service.ErrTooManyAudits, http.StatusTooManyRequests},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockAuditService)
			svc.On("Run", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := doRequest(newAuditRouter(svc), http.MethodPost, "/api/audit", `{"url":"x"}`)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.err.Error(), decode(t, rec)["error"])
		})
	}

	t.Run("Internal Error", func(t *testing.T) {
		svc := new(MockAuditService)
		svc.On("Run", mock.Anything, mock.Anything).Return(nil, errors.New("analyze pages: boom"))

		rec := doRequest(newAuditRouter(svc), http.MethodPost, "/api/audit", `{"url":"https://example.com"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, "Audit failed", resp["error"])
		assert.Equal(t, "analyze pages: boom", resp["details"])
	})
}

func TestAuditHandler_History(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		svc := new(MockAuditService)
		svc.On("List", repository.Pagination{Page: 2, PageSize: 5}).Return(&model.PaginatedResponse[model.AuditSummaryDTO]{
			Data:       []model.AuditSummaryDTO{{ID: "a1", URL: "https://example.com"}},
			Pagination: model.PaginationMetaDTO{Page: 2, PageSize: 5, TotalItems: 6, TotalPages: 2},
		}, nil)

		rec := doRequest(newAuditRouter(svc), http.MethodGet, "/api/audits?page=2&page_size=5", "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Len(t, resp["data"], 1)
		assert.Equal(t, float64(6), resp["pagination"].(map[string]any)["total_items"])
	})

	t.Run("List Defaults", func(t *testing.T) {
		svc := new(MockAuditService)
		svc.On("List", repository.Pagination{Page: 1, PageSize: 10}).
			Return(&model.PaginatedResponse[model.AuditSummaryDTO]{Data: []model.AuditSummaryDTO{}}, nil)

		rec := doRequest(newAuditRouter(svc), http.MethodGet, "/api/audits", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Get", func(t *testing.T) {
		svc := new(MockAuditService)
		svc.On("Get", "a1").Return(&model.AuditResponse{ID: "a1", StartedAt: time.Now()}, nil)

		rec := doRequest(newAuditRouter(svc), http.MethodGet, "/api/audits/a1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a1", decode(t, rec)["id"])
	})

	errorCases := []struct {
		name string
		err  error
		code int
	}{
		{"Not Found", repository.ErrAuditNotFound, http.StatusNotFound},
		{"Disabled", service.ErrHistoryDisabled, http.StatusServiceUnavailable},
		{"DB Error", errors.New("db error"), http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run("Get "+tc.name, func(t *testing.T) {
			svc := new(MockAuditService)
			svc.On("Get", "zz").Return(nil, tc.err)

			rec := doRequest(newAuditRouter(svc), http.MethodGet, "/api/audits/zz", "")
			assert.Equal(t, tc.code, rec.Code)
		})
		t.Run("List "+tc.name, func(t *testing.T) {
			svc := new(MockAuditService)
			svc.On("List", mock.Anything).Return(nil, tc.err)

			rec := doRequest(newAuditRouter(svc), http.MethodGet, "/api/audits", "")
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

// dummyHealthService implements service.HealthService for unit testing.
type dummyHealthService struct {
	response *service.HealthStatus
}

func (d *dummyHealthService) Check() *service.HealthStatus {
	return d.response
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(db string, healthy bool) *gin.Engine {
		h := handler.NewHealthHandler(&dummyHealthService{
			response: &service.HealthStatus{
				Service:  "webhack",
				Database: db,
				Healthy:  healthy,
				Checked:  time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
			},
		})
		r := gin.New()
		h.RegisterRoutes(&r.RouterGroup)
		return r
	}

	t.Run("Home Endpoint", func(t *testing.T) {
		rec := doRequest(newRouter("disabled", true), http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, "webhack", resp["service"])
		assert.Equal(t, "running", resp["status"])
	})

	t.Run("Healthy", func(t *testing.T) {
		rec := doRequest(newRouter("healthy", true), http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, true, resp["ok"])
		assert.Equal(t, "ok", resp["status"])
		assert.Equal(t, "healthy", resp["database"])
		assert.Equal(t, "2025-07-10T00:00:00Z", resp["timestamp"])
	})

	t.Run("Unhealthy", func(t *testing.T) {
		rec := doRequest(newRouter("unhealthy", false), http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, false, resp["ok"])
		assert.Equal(t, "unhealthy", resp["database"])
	})
}
