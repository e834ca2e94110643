package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/client"
)

type clientResponse struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	BusinessName    string        `json:"businessName"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	Status          client.Status `json:"status"`
	TotalSales      int64         `json:"totalSales"`
	TotalCollection int64         `json:"totalCollection"`
	Balance         int64         `json:"balance"`
	InvoiceCount    int           `json:"invoiceCount"`
	Tags            []string      `json:"tags"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       *time.Time    `json:"updatedAt,omitempty"`
}

func toResponse(c *client.Client) clientResponse {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}

	return clientResponse{
		ID:              c.ID,
		Name:            c.Name,
		BusinessName:    c.BusinessName,
		Email:           c.Email,
		Phone:           c.Phone,
		Status:          c.Status,
		TotalSales:      c.TotalSales,
		TotalCollection: c.TotalCollection,
		Balance:         c.Balance,
		InvoiceCount:    c.InvoiceCount,
		Tags:            tags,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}

type tagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func toTagResponse(t *client.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}
}

func toTagResponseList(tags []*client.Tag) []tagResponse {
	resp := make([]tagResponse, len(tags))
	for i, t := range tags {
		resp[i] = toTagResponse(t)
	}

	return resp
}
