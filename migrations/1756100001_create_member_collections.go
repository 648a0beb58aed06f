package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}
		products, err := app.FindCollectionByNameOrId("products")
		if err != nil {
			return err
		}

		profiles := core.NewBaseCollection("profiles")
		profiles.Fields.Add(
			&core.RelationField{Name: "user", CollectionId: users.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.TextField{Name: "name", Max: 100},
			&core.EmailField{Name: "email"},
			&core.TextField{Name: "phone", Max: 50},
			&core.BoolField{Name: "marketing_consent"},
			&core.DateField{Name: "consent_at"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		profiles.AddIndex("idx_profiles_user", true, "user", "")
		if err := app.Save(profiles); err != nil {
			return err
		}

		adminUsers := core.NewBaseCollection("admin_users")
		adminUsers.Fields.Add(
			&core.RelationField{Name: "user", CollectionId: users.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.AutodateField{Name: "created", OnCreate: true},
		)
		adminUsers.AddIndex("idx_admin_users_user", true, "user", "")
		if err := app.Save(adminUsers); err != nil {
			return err
		}

		bookings := core.NewBaseCollection("bookings")
		bookings.Fields.Add(
			&core.RelationField{Name: "user", CollectionId: users.Id, MaxSelect: 1, Required: true},
			&core.RelationField{Name: "product", CollectionId: products.Id, MaxSelect: 1, Required: true},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"REQUESTED", "CONFIRMED", "CANCELLED", "COMPLETED"},
				MaxSelect: 1,
			},
			&core.TextField{Name: "travel_date", Max: 20},
			&core.NumberField{Name: "people_count", OnlyInt: true},
			&core.TextField{Name: "contact_name", Max: 100},
			&core.TextField{Name: "phone", Max: 50},
			&core.TextField{Name: "memo", Max: 2000},
			&core.TextField{Name: "admin_memo", Max: 2000},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		bookings.AddIndex("idx_bookings_user_status", false, "user, status", "")
		bookings.AddIndex("idx_bookings_status_created", false, "status, created", "")
		if err := app.Save(bookings); err != nil {
			return err
		}

		favorites := core.NewBaseCollection("product_favorites")
		favorites.Fields.Add(
			&core.RelationField{Name: "user", CollectionId: users.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.RelationField{Name: "product", CollectionId: products.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.AutodateField{Name: "created", OnCreate: true},
		)
		// One row per (user, product); repeated favoriting is a no-op at the
		// schema level.
		favorites.AddIndex("idx_favorites_user_product", true, "user, product", "")
		return app.Save(favorites)
	}, func(app core.App) error {
		for _, name := range []string{"product_favorites", "bookings", "admin_users", "profiles"} {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				continue
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
		return nil
	}, "1756100001_create_member_collections.go")
}
