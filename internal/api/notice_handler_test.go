package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourvia/internal/api"
	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

type stubNoticeRepo struct {
	listPublicFn func(ctx context.Context, filters repository.NoticeFilters) ([]*domain.Notice, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Notice, error)
}

func (s *stubNoticeRepo) ListPublic(ctx context.Context, filters repository.NoticeFilters) ([]*domain.Notice, error) {
	return s.listPublicFn(ctx, filters)
}

func (s *stubNoticeRepo) ListAdmin(context.Context, repository.AdminNoticeFilters) ([]*domain.Notice, error) {
	return nil, nil
}

func (s *stubNoticeRepo) GetByID(ctx context.Context, id string) (*domain.Notice, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubNoticeRepo) Create(context.Context, *domain.NoticeInput) (*domain.Notice, error) {
	return nil, repository.ErrNotFound
}

func (s *stubNoticeRepo) Update(context.Context, string, *domain.NoticeInput) (*domain.Notice, error) {
	return nil, repository.ErrNotFound
}

func (s *stubNoticeRepo) Delete(context.Context, string) error { return nil }

func setupNoticeRouter(notices *stubNoticeRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := api.NewNoticeHandler(notices)
	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func TestNoticeHandler_List(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectedTab domain.NoticeTab
		expectedQ   string
	}{
		{
			name:        "defaults to the all tab",
			url:         "/api/notices",
			expectedTab: domain.NoticeTabAll,
		},
		{
			name:        "pinned tab narrows the listing",
			url:         "/api/notices?tab=PINNED",
			expectedTab: domain.NoticeTabPinned,
		},
		{
			name:        "title search is passed through",
			url:         "/api/notices?q=maintenance",
			expectedTab: domain.NoticeTabAll,
			expectedQ:   "maintenance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notices := &stubNoticeRepo{
				listPublicFn: func(_ context.Context, filters repository.NoticeFilters) ([]*domain.Notice, error) {
					assert.Equal(t, tt.expectedTab, filters.Tab)
					assert.Equal(t, tt.expectedQ, filters.Search)
					return []*domain.Notice{
						{ID: "n2", Title: "Pinned first", Published: true, Pinned: true},
						{ID: "n1", Title: "Older entry", Published: true},
					}, nil
				},
			}
			router := setupNoticeRouter(notices)

			recorder := doJSON(t, router, "GET", tt.url, nil)

			require.Equal(t, http.StatusOK, recorder.Code)
			envelope := decodeEnvelope(t, recorder)
			items := envelope["data"].([]any)
			require.Len(t, items, 2)
			assert.Equal(t, "n2", items[0].(map[string]any)["id"])
		})
	}
}

func TestNoticeHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		notice         *domain.Notice
		err            error
		expectedStatus int
	}{
		{
			name:           "published notice is visible",
			notice:         &domain.Notice{ID: "n1", Title: "Open", Published: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unpublished notice reads as absent",
			notice:         &domain.Notice{ID: "n1", Title: "Draft", Published: false},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing notice is a 404",
			err:            repository.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notices := &stubNoticeRepo{
				getByIDFn: func(_ context.Context, id string) (*domain.Notice, error) {
					require.Equal(t, "n1", id)
					if tt.err != nil {
						return nil, tt.err
					}
					return tt.notice, nil
				},
			}
			router := setupNoticeRouter(notices)

			recorder := doJSON(t, router, "GET", "/api/notices/n1", nil)

			require.Equal(t, tt.expectedStatus, recorder.Code)
			envelope := decodeEnvelope(t, recorder)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, true, envelope["success"])
				assert.Equal(t, "Open", envelope["data"].(map[string]any)["title"])
			} else {
				assert.Equal(t, false, envelope["success"])
				assert.Equal(t, "NOTICE_NOT_FOUND", envelope["error"].(map[string]any)["code"])
			}
		})
	}
}
