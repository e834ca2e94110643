package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/client"
)

// ClientLister provides the client rows to export.
type ClientLister interface {
	List(ctx context.Context) ([]*client.Client, error)
}

// InvoiceLister provides the invoice rows to export.
type InvoiceLister interface {
	ListInvoices(ctx context.Context) ([]*billing.Invoice, error)
}

type Service struct {
	clients  ClientLister
	invoices InvoiceLister
}

func NewService(clients ClientLister, invoices InvoiceLister) *Service {
	return &Service{clients: clients, invoices: invoices}
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// WriteClientsCSV streams all clients as CSV.
func (s *Service) WriteClientsCSV(ctx context.Context, w io.Writer) error {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return fmt.Errorf("listing clients for export: %w", err)
	}

	cw := csv.NewWriter(w)

	header := []string{"id", "name", "business_name", "email", "phone", "status", "total_sales", "total_collection", "balance", "invoice_count", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, c := range clients {
		record := []string{
			c.ID.String(),
			c.Name,
			c.BusinessName,
			c.Email,
			c.Phone,
			string(c.Status),
			formatCents(c.TotalSales),
			formatCents(c.TotalCollection),
			formatCents(c.Balance),
			strconv.Itoa(c.InvoiceCount),
			c.CreatedAt.Format(time.DateOnly),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing client record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteInvoicesCSV streams all invoices as CSV.
func (s *Service) WriteInvoicesCSV(ctx context.Context, w io.Writer) error {
	invoices, err := s.invoices.ListInvoices(ctx)
	if err != nil {
		return fmt.Errorf("listing invoices for export: %w", err)
	}

	cw := csv.NewWriter(w)

	header := []string{"id", "client_id", "package", "amount", "paid", "due", "status", "created_at"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	for _, inv := range invoices {
		record := []string{
			inv.ID.String(),
			inv.ClientID.String(),
			inv.PackageName,
			formatCents(inv.Amount),
			formatCents(inv.Paid),
			formatCents(inv.Due),
			string(inv.Status),
			inv.CreatedAt.Format(time.DateOnly),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing invoice record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}
