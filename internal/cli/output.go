package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"tourvia/internal/domain"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatYML  = "yml"
)

func renderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func renderYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// RenderProducts renders a product listing in the requested format.
func RenderProducts(products []domain.Product, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(products)
	case formatYAML, formatYML:
		return renderYAML(products)
	default:
		return renderProductsTable(products)
	}
}

func renderProductsTable(products []domain.Product) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Region", "Duration", "Status", "Updated"})

	for _, p := range products {
		duration := fmt.Sprintf("%dN%dD", p.Nights, p.Days)
		updated := ""
		if !p.UpdatedAt.IsZero() {
			updated = p.UpdatedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			p.ID,
			truncate(p.Title, 40),
			p.Region,
			duration,
			string(p.Status),
			updated,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

// RenderBookings renders a booking listing in the requested format.
func RenderBookings(bookings []domain.Booking, total int, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(bookings)
	case formatYAML, formatYML:
		return renderYAML(bookings)
	default:
		return renderBookingsTable(bookings, total)
	}
}

func renderBookingsTable(bookings []domain.Booking, total int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Product", "Contact", "Travel Date", "People", "Status", "Created"})

	for _, b := range bookings {
		productTitle := ""
		if b.Product != nil {
			productTitle = truncate(b.Product.Title, 30)
		}
		created := ""
		if !b.CreatedAt.IsZero() {
			created = b.CreatedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			b.ID,
			productTitle,
			b.ContactName,
			b.TravelDate,
			b.PeopleCount,
			string(b.Status),
			created,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
	fmt.Printf("Showing %d of %d bookings\n", len(bookings), total)
	return nil
}

// RenderInquiries renders an inquiry listing in the requested format.
func RenderInquiries(inquiries []domain.Inquiry, total int, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(inquiries)
	case formatYAML, formatYML:
		return renderYAML(inquiries)
	default:
		return renderInquiriesTable(inquiries, total)
	}
}

func renderInquiriesTable(inquiries []domain.Inquiry, total int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Name", "Title", "Status", "Created"})

	for _, inq := range inquiries {
		created := ""
		if !inq.CreatedAt.IsZero() {
			created = inq.CreatedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			inq.ID,
			inq.Name,
			truncate(inq.Title, 40),
			string(inq.Status),
			created,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
	fmt.Printf("Showing %d of %d inquiries\n", len(inquiries), total)
	return nil
}

// RenderNotices renders a notice listing in the requested format.
func RenderNotices(notices []domain.Notice, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(notices)
	case formatYAML, formatYML:
		return renderYAML(notices)
	default:
		return renderNoticesTable(notices)
	}
}

func renderNoticesTable(notices []domain.Notice) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Title", "Published", "Pinned", "Created"})

	for _, n := range notices {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.Format("2006-01-02")
		}
		t.AppendRow(table.Row{
			n.ID,
			truncate(n.Title, 50),
			n.Published,
			n.Pinned,
			created,
		})
	}

	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

// RenderProductDetails renders the full detail view of one product.
func RenderProductDetails(product *domain.Product, format string) error {
	switch strings.ToLower(format) {
	case formatJSON:
		return renderJSON(product)
	case formatYAML, formatYML:
		return renderYAML(product)
	default:
		return renderProductDetailsText(product)
	}
}

func renderProductDetailsText(product *domain.Product) error {
	fmt.Printf("ID:        %s\n", product.ID)
	fmt.Printf("Title:     %s\n", product.Title)
	if product.Subtitle != "" {
		fmt.Printf("Subtitle:  %s\n", product.Subtitle)
	}
	fmt.Printf("Region:    %s\n", product.Region)
	fmt.Printf("Duration:  %d nights, %d days\n", product.Nights, product.Days)
	fmt.Printf("Status:    %s\n", product.Status)
	if product.PriceText != "" {
		fmt.Printf("Price:     %s\n", product.PriceText)
	}
	fmt.Printf("Itinerary: %d day(s)\n", len(product.Itinerary))
	fmt.Printf("Departures: %d\n", len(product.Departures))
	if !product.UpdatedAt.IsZero() {
		fmt.Printf("Updated:   %s\n", product.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
