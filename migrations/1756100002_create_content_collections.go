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

		notices := core.NewBaseCollection("notices")
		notices.Fields.Add(
			&core.TextField{Name: "title", Required: true, Max: 200},
			&core.TextField{Name: "content", Max: 20000},
			&core.BoolField{Name: "published"},
			&core.BoolField{Name: "pinned"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		notices.AddIndex("idx_notices_published_pinned", false, "published, pinned, created", "")
		if err := app.Save(notices); err != nil {
			return err
		}

		inquiries := core.NewBaseCollection("inquiries")
		inquiries.Fields.Add(
			&core.RelationField{Name: "user", CollectionId: users.Id, MaxSelect: 1},
			&core.TextField{Name: "name", Required: true, Max: 100},
			&core.TextField{Name: "email", Max: 200},
			&core.TextField{Name: "phone", Max: 50},
			&core.TextField{Name: "title", Required: true, Max: 200},
			&core.TextField{Name: "content", Required: true, Max: 20000},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"NEW", "IN_PROGRESS", "DONE"},
				MaxSelect: 1,
			},
			&core.TextField{Name: "admin_memo", Max: 2000},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		inquiries.AddIndex("idx_inquiries_status_created", false, "status, created", "")
		if err := app.Save(inquiries); err != nil {
			return err
		}

		settings := core.NewBaseCollection("site_settings")
		settings.Fields.Add(
			&core.TextField{Name: "site_name", Max: 100},
			&core.TextField{Name: "logo_path", Max: 500},
			&core.EmailField{Name: "contact_email"},
			&core.TextField{Name: "contact_phone", Max: 50},
			&core.TextField{Name: "address", Max: 300},
			&core.TextField{Name: "footer_text", Max: 2000},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		return app.Save(settings)
	}, func(app core.App) error {
		for _, name := range []string{"site_settings", "inquiries", "notices"} {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				continue
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
		return nil
	}, "1756100002_create_content_collections.go")
}
