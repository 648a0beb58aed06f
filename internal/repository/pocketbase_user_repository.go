package repository

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseUserRepository implements UserRepository on top of PocketBase's
// auth collections. Passwords never leave the auth backend.
type pocketbaseUserRepository struct {
	app core.App
}

// NewPocketBaseUserRepository creates a new PocketBase user repository.
func NewPocketBaseUserRepository(app core.App) UserRepository {
	return &pocketbaseUserRepository{app: app}
}

// Register creates a new auth record with the given credentials.
func (r *pocketbaseUserRepository) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := r.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("EMAIL_TAKEN", "An account with this email already exists")
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to find users collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.SetEmail(req.Email)
	record.Set("name", req.Name)
	record.SetPassword(req.Password)
	record.SetVerified(false)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save user record: %w", err)
	}
	return r.recordToUser(record), nil
}

// Authenticate verifies the credentials against the stored auth record.
func (r *pocketbaseUserRepository) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	record, err := r.app.FindAuthRecordByEmail(CollectionUsers, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, domain.NewAuthenticationError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, fmt.Errorf("failed to find auth record: %w", err)
	}

	if !record.ValidatePassword(password) {
		return nil, domain.NewAuthenticationError("INVALID_CREDENTIALS", "Invalid email or password")
	}
	return r.recordToUser(record), nil
}

// GetByID retrieves a user by ID.
func (r *pocketbaseUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	record, err := r.app.FindRecordById(CollectionUsers, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", id, err)
	}
	return r.recordToUser(record), nil
}

// ExistsByEmail checks whether an auth record exists for the email.
func (r *pocketbaseUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.app.FindAuthRecordByEmail(CollectionUsers, email)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return true, nil
}

// IsAdmin reports whether the user appears in the admin allowlist collection.
func (r *pocketbaseUserRepository) IsAdmin(_ context.Context, userID string) (bool, error) {
	_, err := r.app.FindFirstRecordByFilter(CollectionAdminUsers,
		"user = {:user}", dbx.Params{"user": userID})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check admin membership: %w", err)
	}
	return true, nil
}

func (r *pocketbaseUserRepository) recordToUser(record *core.Record) *domain.User {
	return &domain.User{
		ID:        record.Id,
		Email:     record.Email(),
		Name:      record.GetString("name"),
		CreatedAt: record.GetDateTime("created").Time(),
		UpdatedAt: record.GetDateTime("updated").Time(),
	}
}
