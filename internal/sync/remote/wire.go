package remote

import (
	"time"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/chat"
	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/link"
	"github.com/sentra-hq/sentra-cms/internal/progress"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

// Wire records mirror the API's camelCase JSON bodies.

type clientRecord struct {
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
	UpdatedAt       *time.Time    `json:"updatedAt"`
}

func (r clientRecord) toDomain() *client.Client {
	return &client.Client{
		ID:              r.ID,
		Name:            r.Name,
		BusinessName:    r.BusinessName,
		Email:           r.Email,
		Phone:           r.Phone,
		Status:          r.Status,
		TotalSales:      r.TotalSales,
		TotalCollection: r.TotalCollection,
		Balance:         r.Balance,
		InvoiceCount:    r.InvoiceCount,
		Tags:            r.Tags,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type tagRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r tagRecord) toDomain() *client.Tag {
	return &client.Tag{ID: r.ID, Name: r.Name, Color: r.Color, CreatedAt: r.CreatedAt}
}

type invoiceRecord struct {
	ID          uuid.UUID             `json:"id"`
	ClientID    uuid.UUID             `json:"clientId"`
	PackageName string                `json:"packageName"`
	Amount      int64                 `json:"amount"`
	Paid        int64                 `json:"paid"`
	Due         int64                 `json:"due"`
	Status      billing.InvoiceStatus `json:"status"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   *time.Time            `json:"updatedAt"`
}

func (r invoiceRecord) toDomain() *billing.Invoice {
	return &billing.Invoice{
		ID:          r.ID,
		ClientID:    r.ClientID,
		PackageName: r.PackageName,
		Amount:      r.Amount,
		Paid:        r.Paid,
		Due:         r.Due,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type paymentRecord struct {
	ID        uuid.UUID             `json:"id"`
	ClientID  uuid.UUID             `json:"clientId"`
	InvoiceID uuid.UUID             `json:"invoiceId"`
	Amount    int64                 `json:"amount"`
	Status    billing.PaymentStatus `json:"status"`
	PaidAt    time.Time             `json:"paidAt"`
	CreatedAt time.Time             `json:"createdAt"`
}

func (r paymentRecord) toDomain() *billing.Payment {
	return &billing.Payment{
		ID:        r.ID,
		ClientID:  r.ClientID,
		InvoiceID: r.InvoiceID,
		Amount:    r.Amount,
		Status:    r.Status,
		PaidAt:    r.PaidAt,
		CreatedAt: r.CreatedAt,
	}
}

type eventRecord struct {
	ID          uuid.UUID          `json:"id"`
	ClientID    uuid.UUID          `json:"clientId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	EventDate   time.Time          `json:"eventDate"`
	StartTime   string             `json:"startTime"`
	EndTime     string             `json:"endTime"`
	Type        calendar.EventType `json:"type"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   *time.Time         `json:"updatedAt"`
}

func (r eventRecord) toDomain() *calendar.Event {
	return &calendar.Event{
		ID:          r.ID,
		ClientID:    r.ClientID,
		Title:       r.Title,
		Description: r.Description,
		EventDate:   r.EventDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Type:        r.Type,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type messageRecord struct {
	ID      uuid.UUID   `json:"id"`
	ChatID  uuid.UUID   `json:"chatId"`
	Sender  chat.Sender `json:"sender"`
	Content string      `json:"content"`
	SentAt  time.Time   `json:"sentAt"`
}

func (r messageRecord) toDomain() *chat.Message {
	return &chat.Message{ID: r.ID, ChatID: r.ChatID, Sender: r.Sender, Content: r.Content, SentAt: r.SentAt}
}

type chatRecord struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"clientId"`
	UnreadCount   int             `json:"unreadCount"`
	LastMessageAt *time.Time      `json:"lastMessageAt"`
	CreatedAt     time.Time       `json:"createdAt"`
	Messages      []messageRecord `json:"messages"`
}

func (r chatRecord) toDomain() *chat.Chat {
	c := &chat.Chat{
		ID:            r.ID,
		ClientID:      r.ClientID,
		UnreadCount:   r.UnreadCount,
		LastMessageAt: r.LastMessageAt,
		CreatedAt:     r.CreatedAt,
	}
	for _, m := range r.Messages {
		c.Messages = append(c.Messages, m.toDomain())
	}
	return c
}

type commentRecord struct {
	ID        uuid.UUID `json:"id"`
	StepID    uuid.UUID `json:"stepId"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type stepRecord struct {
	ID        uuid.UUID       `json:"id"`
	ClientID  uuid.UUID       `json:"clientId"`
	Title     string          `json:"title"`
	Deadline  time.Time       `json:"deadline"`
	Completed bool            `json:"completed"`
	Comments  []commentRecord `json:"comments"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt"`
}

func (r stepRecord) toDomain() *progress.Step {
	s := &progress.Step{
		ID:        r.ID,
		ClientID:  r.ClientID,
		Title:     r.Title,
		Deadline:  r.Deadline,
		Completed: r.Completed,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, c := range r.Comments {
		s.Comments = append(s.Comments, &progress.Comment{
			ID: c.ID, StepID: c.StepID, Text: c.Text, Author: c.Author, CreatedAt: c.CreatedAt,
		})
	}
	return s
}

type linkRecord struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"clientId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r linkRecord) toDomain() *link.Link {
	return &link.Link{
		ID:        r.ID,
		ClientID:  r.ClientID,
		Title:     r.Title,
		URL:       r.URL,
		Category:  r.Category,
		CreatedAt: r.CreatedAt,
	}
}

type userRecord struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      user.Role  `json:"role"`
	ClientID  *uuid.UUID `json:"clientId"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

func (r userRecord) toDomain() *user.User {
	return &user.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		ClientID:  r.ClientID,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
