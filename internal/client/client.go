package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("client not found")

// Status represents the onboarding state of a client account.
type Status string

const (
	StatusComplete Status = "Complete"
	StatusPending  Status = "Pending"
	StatusInactive Status = "Inactive"
)

// Client is a managed customer account. The monetary aggregates
// (TotalSales, TotalCollection, Balance) are maintained additively by
// billing events, not recomputed from the ledger on read.
type Client struct {
	ID              uuid.UUID
	Name            string
	BusinessName    string
	Email           string
	Phone           string
	Status          Status
	TotalSales      int64 // cents
	TotalCollection int64 // cents
	Balance         int64 // cents
	InvoiceCount    int
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Tag is a global named label. Clients reference tags by name, not id.
type Tag struct {
	ID        uuid.UUID
	Name      string
	Color     string
	CreatedAt time.Time
}
