package repository

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"tourvia/internal/domain"
)

// pocketbaseFavoriteRepository implements FavoriteRepository using PocketBase.
type pocketbaseFavoriteRepository struct {
	app core.App
}

// NewPocketBaseFavoriteRepository creates a new PocketBase favorite repository.
func NewPocketBaseFavoriteRepository(app core.App) FavoriteRepository {
	return &pocketbaseFavoriteRepository{app: app}
}

// IsFavorited reports whether the (user, product) pair exists.
func (r *pocketbaseFavoriteRepository) IsFavorited(_ context.Context, userID, productID string) (bool, error) {
	if userID == "" || productID == "" {
		return false, fmt.Errorf("user ID and product ID cannot be empty")
	}

	_, err := r.app.FindFirstRecordByFilter(
		CollectionFavorites,
		"user = {:user} && product = {:product}",
		dbx.Params{"user": userID, "product": productID},
	)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}
	return true, nil
}

// Add inserts a favorite unconditionally. There is no existence check here;
// whether duplicate pairs are rejected is up to the storage schema.
func (r *pocketbaseFavoriteRepository) Add(_ context.Context, userID, productID string) (*domain.Favorite, error) {
	if userID == "" || productID == "" {
		return nil, fmt.Errorf("user ID and product ID cannot be empty")
	}

	collection, err := r.app.FindCollectionByNameOrId(CollectionFavorites)
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("user", userID)
	record.Set("product", productID)

	if err := r.app.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save favorite record: %w", err)
	}
	return r.recordToFavorite(record), nil
}

// Remove deletes the (user, product) pairing. Removing an absent pair is
// success.
func (r *pocketbaseFavoriteRepository) Remove(_ context.Context, userID, productID string) error {
	if userID == "" || productID == "" {
		return fmt.Errorf("user ID and product ID cannot be empty")
	}

	record, err := r.app.FindFirstRecordByFilter(
		CollectionFavorites,
		"user = {:user} && product = {:product}",
		dbx.Params{"user": userID, "product": productID},
	)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to find favorite for removal: %w", err)
	}

	if err := r.app.Delete(record); err != nil {
		return fmt.Errorf("failed to delete favorite record: %w", err)
	}
	return nil
}

// ListMine retrieves a user's favorites newest first with product display
// fields joined in.
func (r *pocketbaseFavoriteRepository) ListMine(_ context.Context, userID string) ([]*domain.Favorite, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	records, err := r.app.FindRecordsByFilter(
		CollectionFavorites,
		"user = {:user}",
		"-created", 0, 0,
		dbx.Params{"user": userID},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]*domain.Favorite, len(records))
	for i, record := range records {
		favorite := r.recordToFavorite(record)
		favorite.Product = r.expandProduct(record)
		favorites[i] = favorite
	}
	return favorites, nil
}

// ListByUserIDs retrieves all favorites for the given users in one query.
func (r *pocketbaseFavoriteRepository) ListByUserIDs(_ context.Context, userIDs []string) ([]*domain.Favorite, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	ids := make([]interface{}, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id
	}

	var records []*core.Record
	err := r.app.RecordQuery(CollectionFavorites).
		AndWhere(dbx.In("user", ids...)).
		All(&records)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites by users: %w", err)
	}

	favorites := make([]*domain.Favorite, len(records))
	for i, record := range records {
		favorites[i] = r.recordToFavorite(record)
	}
	return favorites, nil
}

// expandProduct normalizes the joined product, which the backend may hand
// back as a single record or a one-element list depending on the relation
// shape. Both encodings collapse to one nullable object here and the
// variance never leaks upward.
func (r *pocketbaseFavoriteRepository) expandProduct(record *core.Record) *domain.BookingProduct {
	errs := r.app.ExpandRecord(record, []string{"product"}, nil)
	if len(errs) > 0 {
		return nil
	}

	product := record.ExpandedOne("product")
	if product == nil {
		if all := record.ExpandedAll("product"); len(all) > 0 {
			product = all[0]
		}
	}
	if product == nil {
		return nil
	}

	return &domain.BookingProduct{
		ID:           product.Id,
		Title:        product.GetString("title"),
		Region:       product.GetString("region"),
		ThumbnailURL: product.GetString("thumbnail_ref"),
	}
}

func (r *pocketbaseFavoriteRepository) recordToFavorite(record *core.Record) *domain.Favorite {
	return &domain.Favorite{
		ID:        record.Id,
		UserID:    record.GetString("user"),
		ProductID: record.GetString("product"),
		CreatedAt: record.GetDateTime("created").Time(),
	}
}
