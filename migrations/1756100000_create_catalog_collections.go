// Package migrations contains PocketBase migrations for the tour catalog
// and member collections.
package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		themes := core.NewBaseCollection("product_themes")
		themes.Fields.Add(
			&core.TextField{Name: "name", Required: true, Max: 100},
			&core.TextField{Name: "slug", Max: 100},
			&core.NumberField{Name: "sort_order", OnlyInt: true},
			&core.BoolField{Name: "active"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		themes.AddIndex("idx_product_themes_sort", false, "sort_order", "")
		if err := app.Save(themes); err != nil {
			return err
		}

		areas := core.NewBaseCollection("product_areas")
		areas.Fields.Add(
			&core.RelationField{Name: "theme", CollectionId: themes.Id, MaxSelect: 1},
			&core.TextField{Name: "name", Required: true, Max: 100},
			&core.TextField{Name: "slug", Max: 100},
			&core.NumberField{Name: "sort_order", OnlyInt: true},
			&core.BoolField{Name: "active"},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		areas.AddIndex("idx_product_areas_theme", false, "theme, sort_order", "")
		if err := app.Save(areas); err != nil {
			return err
		}

		products := core.NewBaseCollection("products")
		products.Fields.Add(
			&core.TextField{Name: "title", Required: true, Max: 200},
			&core.TextField{Name: "subtitle", Max: 300},
			&core.TextField{Name: "region", Max: 100},
			&core.NumberField{Name: "nights", OnlyInt: true},
			&core.NumberField{Name: "days", OnlyInt: true},
			&core.SelectField{
				Name:      "status",
				Values:    []string{"DRAFT", "PUBLISHED", "HIDDEN"},
				MaxSelect: 1,
			},
			&core.TextField{Name: "price_text", Max: 100},
			&core.TextField{Name: "description", Max: 20000},
			&core.TextField{Name: "thumbnail_ref", Max: 500},
			&core.JSONField{Name: "images"},
			&core.JSONField{Name: "included"},
			&core.JSONField{Name: "excluded"},
			&core.JSONField{Name: "notices"},
			&core.JSONField{Name: "itinerary"},
			&core.JSONField{Name: "departures"},
			&core.RelationField{Name: "theme", CollectionId: themes.Id, MaxSelect: 1},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		products.AddIndex("idx_products_status_updated", false, "status, updated", "")
		products.AddIndex("idx_products_region", false, "region", "")
		return app.Save(products)
	}, func(app core.App) error {
		for _, name := range []string{"products", "product_areas", "product_themes"} {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				continue
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
		return nil
	}, "1756100000_create_catalog_collections.go")
}
