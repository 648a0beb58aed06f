package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourvia/internal/api"
	"tourvia/internal/api/middleware"
	"tourvia/internal/domain"
	"tourvia/internal/repository"
	"tourvia/internal/services"
)

type stubBookingRepo struct {
	createFn     func(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error)
	listMineFn   func(ctx context.Context, userID string) ([]*domain.Booking, error)
	cancelMineFn func(ctx context.Context, id, userID string) error
}

func (s *stubBookingRepo) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	return s.createFn(ctx, userID, req)
}

func (s *stubBookingRepo) GetByID(context.Context, string) (*domain.Booking, error) {
	return nil, repository.ErrNotFound
}

func (s *stubBookingRepo) ListMine(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return s.listMineFn(ctx, userID)
}

func (s *stubBookingRepo) ListAdmin(context.Context, repository.AdminBookingFilters) ([]*domain.Booking, int, error) {
	return nil, 0, nil
}

func (s *stubBookingRepo) ListByUserIDs(context.Context, []string) ([]*domain.Booking, error) {
	return nil, nil
}

func (s *stubBookingRepo) PatchAdmin(context.Context, string, *domain.AdminBookingPatch) (*domain.Booking, error) {
	return nil, repository.ErrNotFound
}

func (s *stubBookingRepo) CancelMine(ctx context.Context, id, userID string) error {
	return s.cancelMineFn(ctx, id, userID)
}

type stubProductRepo struct {
	getByIDFn func(ctx context.Context, id string) (*domain.Product, error)
}

func (s *stubProductRepo) List(context.Context, repository.ProductFilters) ([]*domain.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubProductRepo) Create(context.Context, *domain.ProductInput) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Update(context.Context, string, *domain.ProductInput) (*domain.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Delete(context.Context, string) error { return nil }

type passthroughResolver struct{}

func (passthroughResolver) ResolveURL(_ context.Context, ref string) (string, error) {
	return ref, nil
}

// setupBookingRouter wires the handler behind a stand-in auth layer that
// injects a fixed user, mirroring what RequireAuth does after token checks.
func setupBookingRouter(bookings *stubBookingRepo, products *stubProductRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := services.NewBookingService(bookings, products, passthroughResolver{}, slog.New(slog.DiscardHandler))
	handler := api.NewBookingHandler(service)

	router := gin.New()
	authed := router.Group("/api", func(c *gin.Context) {
		c.Set(middleware.UserContextKey, &domain.User{ID: "user1", Email: "user@example.com"})
		c.Set("user_id", "user1")
		c.Next()
	})
	authed.POST("/bookings", handler.Create)
	authed.GET("/me/bookings", handler.ListMine)
	authed.POST("/me/bookings/:id/cancel", handler.CancelMine)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

func TestBookingHandler_Create(t *testing.T) {
	bookings := &stubBookingRepo{
		createFn: func(_ context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
			return &domain.Booking{
				ID:          "bk1",
				UserID:      userID,
				ProductID:   req.ProductID,
				Status:      domain.BookingRequested,
				TravelDate:  req.TravelDate,
				PeopleCount: req.PeopleCount,
				ContactName: req.ContactName,
				Phone:       req.Phone,
			}, nil
		},
	}
	products := &stubProductRepo{
		getByIDFn: func(_ context.Context, id string) (*domain.Product, error) {
			if id == "prod1" {
				return &domain.Product{ID: "prod1", Status: domain.ProductPublished}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	router := setupBookingRouter(bookings, products)

	t.Run("client-supplied status is discarded", func(t *testing.T) {
		recorder := doJSON(t, router, "POST", "/api/bookings", map[string]any{
			"product_id":   "prod1",
			"travel_date":  "2026-10-01",
			"people_count": 2,
			"contact_name": "Kim",
			"phone":        "010-0000-0000",
			"status":       "CONFIRMED",
		})

		require.Equal(t, http.StatusCreated, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, true, envelope["success"])

		data := envelope["data"].(map[string]any)
		assert.Equal(t, string(domain.BookingRequested), data["status"])
		assert.Equal(t, "user1", data["user_id"])
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		recorder := doJSON(t, router, "POST", "/api/bookings", map[string]any{
			"product_id":   "missing",
			"travel_date":  "2026-10-01",
			"people_count": 2,
			"contact_name": "Kim",
			"phone":        "010-0000-0000",
		})

		require.Equal(t, http.StatusNotFound, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, false, envelope["success"])
		assert.Equal(t, "PRODUCT_NOT_FOUND", envelope["error"].(map[string]any)["code"])
	})

	t.Run("missing required fields fail binding", func(t *testing.T) {
		recorder := doJSON(t, router, "POST", "/api/bookings", map[string]any{
			"product_id": "prod1",
		})

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, false, envelope["success"])
	})
}

func TestBookingHandler_CancelMine(t *testing.T) {
	tests := []struct {
		name           string
		cancelErr      error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "owned booking cancels",
			cancelErr:      nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "absent and foreign bookings fail identically",
			cancelErr:      repository.ErrNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   "BOOKING_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &stubBookingRepo{
				cancelMineFn: func(_ context.Context, id, userID string) error {
					assert.Equal(t, "bk1", id)
					assert.Equal(t, "user1", userID)
					return tt.cancelErr
				},
			}
			router := setupBookingRouter(bookings, &stubProductRepo{})

			recorder := doJSON(t, router, "POST", "/api/me/bookings/bk1/cancel", nil)

			require.Equal(t, tt.expectedStatus, recorder.Code)
			envelope := decodeEnvelope(t, recorder)
			if tt.expectedCode != "" {
				assert.Equal(t, false, envelope["success"])
				assert.Equal(t, tt.expectedCode, envelope["error"].(map[string]any)["code"])
			} else {
				assert.Equal(t, true, envelope["success"])
			}
		})
	}
}

func TestBookingHandler_ListMine(t *testing.T) {
	bookings := &stubBookingRepo{
		listMineFn: func(_ context.Context, userID string) ([]*domain.Booking, error) {
			require.Equal(t, "user1", userID)
			return []*domain.Booking{
				{ID: "bk2", Status: domain.BookingConfirmed},
				{ID: "bk1", Status: domain.BookingRequested},
			}, nil
		},
	}
	router := setupBookingRouter(bookings, &stubProductRepo{})

	recorder := doJSON(t, router, "GET", "/api/me/bookings", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	items := envelope["data"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "bk2", items[0].(map[string]any)["id"])
}
