package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, client_id, package_name, amount, paid, due,
// status, created_at, updated_at
func scanInvoice(s scanner) (*billing.Invoice, error) {
	var inv billing.Invoice

	var statusStr string

	if err := s.Scan(
		&inv.ID, &inv.ClientID, &inv.PackageName, &inv.Amount, &inv.Paid, &inv.Due,
		&statusStr, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = billing.InvoiceStatus(statusStr)

	return &inv, nil
}

const selectInvoiceColumns = `
	id, client_id, package_name, amount, paid, due, status, created_at, updated_at
`

// CreateInvoice inserts the invoice and bumps the owning client's
// aggregates in the same transaction, so the two can never diverge on
// this path.
func (s *Store) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning invoice create: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (client_id, package_name, amount, paid, due, status, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRowContext(ctx, query,
		inv.ClientID,
		inv.PackageName,
		inv.Amount,
		inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET total_sales = total_sales + $1,
		    balance = balance + $1,
		    invoice_count = invoice_count + 1,
		    updated_at = NOW()
		WHERE id = $2
	`, inv.Amount, inv.ClientID)
	if err != nil {
		return fmt.Errorf("updating client aggregates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice create: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrInvoiceNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invs []*billing.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invs = append(invs, inv)
	}

	return invs, rows.Err()
}

func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning invoice delete: %w", err)
	}
	defer tx.Rollback()

	inv, err := scanInvoice(tx.QueryRowContext(ctx,
		`SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return billing.ErrInvoiceNotFound
		}

		return fmt.Errorf("locking invoice: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("deleting invoice payments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting invoice: %w", err)
	}

	// Reverse the aggregates the invoice and its payments contributed.
	_, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET total_sales = total_sales - $1,
		    total_collection = total_collection - $2,
		    balance = balance - $3,
		    invoice_count = invoice_count - 1,
		    updated_at = NOW()
		WHERE id = $4
	`, inv.Amount, inv.Paid, inv.Due, inv.ClientID)
	if err != nil {
		return fmt.Errorf("reversing client aggregates: %w", err)
	}

	return tx.Commit()
}

// CreatePayment applies the three-way mutation (payment row, invoice
// paid/due/status, client total_collection/balance) atomically. The
// invoice row is locked for the duration so concurrent payments against
// the same invoice serialize.
func (s *Store) CreatePayment(ctx context.Context, p *billing.Payment) (*billing.Invoice, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment create: %w", err)
	}
	defer tx.Rollback()

	inv, err := scanInvoice(tx.QueryRowContext(ctx,
		`SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, p.InvoiceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, billing.ErrInvoiceNotFound
		}

		return nil, fmt.Errorf("locking invoice: %w", err)
	}

	if p.Amount > inv.Due {
		return nil, billing.ErrOverpayment
	}

	query := `
		INSERT INTO payments (client_id, invoice_id, amount, status, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		p.ClientID,
		p.InvoiceID,
		p.Amount,
		p.Status,
		p.PaidAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	inv.Paid += p.Amount
	inv.Due -= p.Amount
	inv.Status = billing.StatusFor(inv.Amount, inv.Paid)

	_, err = tx.ExecContext(ctx, `
		UPDATE invoices
		SET paid = $1, due = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`, inv.Paid, inv.Due, inv.Status, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("updating invoice: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET total_collection = total_collection + $1,
		    balance = balance - $1,
		    updated_at = NOW()
		WHERE id = $2
	`, p.Amount, p.ClientID)
	if err != nil {
		return nil, fmt.Errorf("updating client aggregates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment create: %w", err)
	}

	return inv, nil
}

func (s *Store) ListPayments(ctx context.Context) ([]*billing.Payment, error) {
	query := `
		SELECT id, client_id, invoice_id, amount, status, paid_at, created_at
		FROM payments ORDER BY paid_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*billing.Payment

	for rows.Next() {
		var p billing.Payment

		var statusStr string

		if err := rows.Scan(&p.ID, &p.ClientID, &p.InvoiceID, &p.Amount, &statusStr, &p.PaidAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Status = billing.PaymentStatus(statusStr)

		payments = append(payments, &p)
	}

	return payments, rows.Err()
}

// DeletePayment reverses the payment's effect on the invoice and client
// before removing the row.
func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning payment delete: %w", err)
	}
	defer tx.Rollback()

	var p billing.Payment

	var statusStr string

	err = tx.QueryRowContext(ctx, `
		SELECT id, client_id, invoice_id, amount, status, paid_at, created_at
		FROM payments WHERE id = $1 FOR UPDATE
	`, id).Scan(&p.ID, &p.ClientID, &p.InvoiceID, &p.Amount, &statusStr, &p.PaidAt, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return billing.ErrPaymentNotFound
		}

		return fmt.Errorf("locking payment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting payment: %w", err)
	}

	inv, err := scanInvoice(tx.QueryRowContext(ctx,
		`SELECT `+selectInvoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, p.InvoiceID))
	if err == nil {
		inv.Paid -= p.Amount
		inv.Due += p.Amount
		inv.Status = billing.StatusFor(inv.Amount, inv.Paid)

		_, err = tx.ExecContext(ctx, `
			UPDATE invoices SET paid = $1, due = $2, status = $3, updated_at = NOW() WHERE id = $4
		`, inv.Paid, inv.Due, inv.Status, inv.ID)
		if err != nil {
			return fmt.Errorf("reversing invoice totals: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("locking invoice: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET total_collection = total_collection - $1,
		    balance = balance + $1,
		    updated_at = NOW()
		WHERE id = $2
	`, p.Amount, p.ClientID)
	if err != nil {
		return fmt.Errorf("reversing client aggregates: %w", err)
	}

	return tx.Commit()
}
