package services

import (
	"context"
	"sync"

	"tourvia/internal/domain"
	"tourvia/internal/repository"
)

// Func-field mocks so each test configures only the calls it expects.

type mockProductRepo struct {
	listFn    func(ctx context.Context, filters repository.ProductFilters) ([]*domain.Product, error)
	getByIDFn func(ctx context.Context, id string) (*domain.Product, error)
	createFn  func(ctx context.Context, input *domain.ProductInput) (*domain.Product, error)
	updateFn  func(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (m *mockProductRepo) List(ctx context.Context, filters repository.ProductFilters) ([]*domain.Product, error) {
	return m.listFn(ctx, filters)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockProductRepo) Create(ctx context.Context, input *domain.ProductInput) (*domain.Product, error) {
	return m.createFn(ctx, input)
}

func (m *mockProductRepo) Update(ctx context.Context, id string, input *domain.ProductInput) (*domain.Product, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockBookingRepo struct {
	createFn        func(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error)
	getByIDFn       func(ctx context.Context, id string) (*domain.Booking, error)
	listMineFn      func(ctx context.Context, userID string) ([]*domain.Booking, error)
	listAdminFn     func(ctx context.Context, filters repository.AdminBookingFilters) ([]*domain.Booking, int, error)
	listByUserIDsFn func(ctx context.Context, userIDs []string) ([]*domain.Booking, error)
	patchAdminFn    func(ctx context.Context, id string, patch *domain.AdminBookingPatch) (*domain.Booking, error)
	cancelMineFn    func(ctx context.Context, id, userID string) error
}

func (m *mockBookingRepo) Create(ctx context.Context, userID string, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockBookingRepo) ListMine(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return m.listMineFn(ctx, userID)
}

func (m *mockBookingRepo) ListAdmin(ctx context.Context, filters repository.AdminBookingFilters) ([]*domain.Booking, int, error) {
	return m.listAdminFn(ctx, filters)
}

func (m *mockBookingRepo) ListByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Booking, error) {
	return m.listByUserIDsFn(ctx, userIDs)
}

func (m *mockBookingRepo) PatchAdmin(ctx context.Context, id string, patch *domain.AdminBookingPatch) (*domain.Booking, error) {
	return m.patchAdminFn(ctx, id, patch)
}

func (m *mockBookingRepo) CancelMine(ctx context.Context, id, userID string) error {
	return m.cancelMineFn(ctx, id, userID)
}

type mockFavoriteRepo struct {
	isFavoritedFn   func(ctx context.Context, userID, productID string) (bool, error)
	addFn           func(ctx context.Context, userID, productID string) (*domain.Favorite, error)
	removeFn        func(ctx context.Context, userID, productID string) error
	listMineFn      func(ctx context.Context, userID string) ([]*domain.Favorite, error)
	listByUserIDsFn func(ctx context.Context, userIDs []string) ([]*domain.Favorite, error)
}

func (m *mockFavoriteRepo) IsFavorited(ctx context.Context, userID, productID string) (bool, error) {
	return m.isFavoritedFn(ctx, userID, productID)
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	return m.addFn(ctx, userID, productID)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, productID string) error {
	return m.removeFn(ctx, userID, productID)
}

func (m *mockFavoriteRepo) ListMine(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	return m.listMineFn(ctx, userID)
}

func (m *mockFavoriteRepo) ListByUserIDs(ctx context.Context, userIDs []string) ([]*domain.Favorite, error) {
	return m.listByUserIDsFn(ctx, userIDs)
}

type mockProfileRepo struct {
	getByUserIDFn   func(ctx context.Context, userID string) (*domain.Profile, error)
	ensureForUserFn func(ctx context.Context, user *domain.User) (*domain.Profile, error)
	patchFn         func(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error)
	listPageFn      func(ctx context.Context, filters repository.ProfileFilters) ([]*domain.Profile, int, error)
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return m.getByUserIDFn(ctx, userID)
}

func (m *mockProfileRepo) EnsureForUser(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	return m.ensureForUserFn(ctx, user)
}

func (m *mockProfileRepo) Patch(ctx context.Context, userID string, patch *domain.ProfilePatch) (*domain.Profile, error) {
	return m.patchFn(ctx, userID, patch)
}

func (m *mockProfileRepo) ListPage(ctx context.Context, filters repository.ProfileFilters) ([]*domain.Profile, int, error) {
	return m.listPageFn(ctx, filters)
}

type mockStatsRepo struct {
	summaryFn func(ctx context.Context) (*domain.AdminUsersSummary, error)
}

func (m *mockStatsRepo) Summary(ctx context.Context) (*domain.AdminUsersSummary, error) {
	return m.summaryFn(ctx)
}

type mockUserRepo struct {
	registerFn      func(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	authenticateFn  func(ctx context.Context, email, password string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id string) (*domain.User, error)
	existsByEmailFn func(ctx context.Context, email string) (bool, error)
	isAdminFn       func(ctx context.Context, userID string) (bool, error)
}

func (m *mockUserRepo) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockUserRepo) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, email, password)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.existsByEmailFn(ctx, email)
}

func (m *mockUserRepo) IsAdmin(ctx context.Context, userID string) (bool, error) {
	return m.isAdminFn(ctx, userID)
}

// mockResolver is a URLResolver that records the references it saw. The
// catalog service resolves concurrently, so the record is mutex-guarded.
type mockResolver struct {
	resolveFn func(ctx context.Context, ref string) (string, error)
	mu        sync.Mutex
	seen      []string
}

func (m *mockResolver) ResolveURL(ctx context.Context, ref string) (string, error) {
	m.mu.Lock()
	m.seen = append(m.seen, ref)
	m.mu.Unlock()
	if m.resolveFn != nil {
		return m.resolveFn(ctx, ref)
	}
	return "https://signed.example.com/" + ref, nil
}
