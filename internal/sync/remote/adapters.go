package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/chat"
	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/link"
	"github.com/sentra-hq/sentra-cms/internal/progress"
	"github.com/sentra-hq/sentra-cms/internal/sync"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

// Sources returns one adapter per collection, all sharing this API's
// transport and session token.
func (a *API) Sources() sync.Sources {
	return sync.Sources{
		Clients:  &Clients{api: a},
		Invoices: &Invoices{api: a},
		Payments: &Payments{api: a},
		Calendar: &Calendar{api: a},
		Chats:    &Chats{api: a},
		Progress: &Progress{api: a},
		Links:    &Links{api: a},
		Users:    &Users{api: a},
		Tags:     &Tags{api: a},
	}
}

type Clients struct {
	api *API
}

type clientBody struct {
	Name         string        `json:"name"`
	BusinessName string        `json:"businessName"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Status       client.Status `json:"status"`
	Tags         []string      `json:"tags"`
}

func clientBodyFrom(params sync.ClientParams) clientBody {
	return clientBody{
		Name:         params.Name,
		BusinessName: params.BusinessName,
		Email:        params.Email,
		Phone:        params.Phone,
		Status:       params.Status,
		Tags:         params.Tags,
	}
}

func (c *Clients) List(ctx context.Context) ([]*client.Client, error) {
	var records []clientRecord
	if err := c.api.get(ctx, "/api/clients", &records); err != nil {
		return nil, err
	}

	list := make([]*client.Client, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (c *Clients) Create(ctx context.Context, params sync.ClientParams) (*client.Client, error) {
	var record clientRecord
	if err := c.api.post(ctx, "/api/clients", clientBodyFrom(params), &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (c *Clients) Update(ctx context.Context, id uuid.UUID, params sync.ClientParams) (*client.Client, error) {
	var record clientRecord
	if err := c.api.put(ctx, "/api/clients/"+id.String(), clientBodyFrom(params), &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (c *Clients) Delete(ctx context.Context, id uuid.UUID) error {
	return c.api.delete(ctx, "/api/clients/"+id.String())
}

type Invoices struct {
	api *API
}

func (v *Invoices) List(ctx context.Context) ([]*billing.Invoice, error) {
	var records []invoiceRecord
	if err := v.api.get(ctx, "/api/invoices", &records); err != nil {
		return nil, err
	}

	list := make([]*billing.Invoice, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (v *Invoices) Create(ctx context.Context, params sync.InvoiceParams) (*billing.Invoice, error) {
	body := struct {
		ClientID    uuid.UUID `json:"clientId"`
		PackageName string    `json:"packageName"`
		Amount      int64     `json:"amount"`
	}{params.ClientID, params.PackageName, params.Amount}

	var record invoiceRecord
	if err := v.api.post(ctx, "/api/invoices", body, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (v *Invoices) Delete(ctx context.Context, id uuid.UUID) error {
	return v.api.delete(ctx, "/api/invoices/"+id.String())
}

type Payments struct {
	api *API
}

func (p *Payments) List(ctx context.Context) ([]*billing.Payment, error) {
	var records []paymentRecord
	if err := p.api.get(ctx, "/api/payments", &records); err != nil {
		return nil, err
	}

	list := make([]*billing.Payment, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (p *Payments) Create(ctx context.Context, params sync.PaymentParams) (*billing.Payment, *billing.Invoice, error) {
	body := struct {
		ClientID  uuid.UUID `json:"clientId"`
		InvoiceID uuid.UUID `json:"invoiceId"`
		Amount    int64     `json:"amount"`
	}{params.ClientID, params.InvoiceID, params.Amount}

	var record struct {
		Payment paymentRecord `json:"payment"`
		Invoice invoiceRecord `json:"invoice"`
	}
	if err := p.api.post(ctx, "/api/payments", body, &record); err != nil {
		return nil, nil, err
	}
	return record.Payment.toDomain(), record.Invoice.toDomain(), nil
}

func (p *Payments) Delete(ctx context.Context, id uuid.UUID) error {
	return p.api.delete(ctx, "/api/payments/"+id.String())
}

type Calendar struct {
	api *API
}

func (c *Calendar) List(ctx context.Context) ([]*calendar.Event, error) {
	var records []eventRecord
	if err := c.api.get(ctx, "/api/calendar-events", &records); err != nil {
		return nil, err
	}

	list := make([]*calendar.Event, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (c *Calendar) Create(ctx context.Context, params sync.EventParams) (*calendar.Event, error) {
	body := eventRecord{
		ClientID:    params.ClientID,
		Title:       params.Title,
		Description: params.Description,
		EventDate:   params.EventDate,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Type:        params.Type,
	}

	var record eventRecord
	if err := c.api.post(ctx, "/api/calendar-events", body, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (c *Calendar) Delete(ctx context.Context, id uuid.UUID) error {
	return c.api.delete(ctx, "/api/calendar-events/"+id.String())
}

type Chats struct {
	api *API
}

func (c *Chats) List(ctx context.Context) ([]*chat.Chat, error) {
	var records []chatRecord
	if err := c.api.get(ctx, "/api/chats", &records); err != nil {
		return nil, err
	}

	list := make([]*chat.Chat, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (c *Chats) Messages(ctx context.Context, chatID uuid.UUID) ([]*chat.Message, error) {
	var records []messageRecord
	if err := c.api.get(ctx, fmt.Sprintf("/api/chats/%s/messages", chatID), &records); err != nil {
		return nil, err
	}

	list := make([]*chat.Message, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (c *Chats) Send(ctx context.Context, chatID uuid.UUID, sender chat.Sender, content string) (*chat.Message, error) {
	body := struct {
		Sender  chat.Sender `json:"sender"`
		Content string      `json:"content"`
	}{sender, content}

	var record messageRecord
	if err := c.api.post(ctx, fmt.Sprintf("/api/chats/%s/messages", chatID), body, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (c *Chats) MarkRead(ctx context.Context, chatID uuid.UUID) error {
	return c.api.post(ctx, fmt.Sprintf("/api/chats/%s/read", chatID), nil, nil)
}

type Progress struct {
	api *API
}

func (p *Progress) List(ctx context.Context) ([]*progress.Step, error) {
	var records []stepRecord
	if err := p.api.get(ctx, "/api/progress-steps", &records); err != nil {
		return nil, err
	}

	list := make([]*progress.Step, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (p *Progress) Create(ctx context.Context, params sync.StepParams) (*progress.Step, error) {
	body := struct {
		ClientID uuid.UUID `json:"clientId"`
		Title    string    `json:"title"`
		Deadline time.Time `json:"deadline"`
	}{params.ClientID, params.Title, params.Deadline}

	var record stepRecord
	if err := p.api.post(ctx, "/api/progress-steps", body, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (p *Progress) Toggle(ctx context.Context, id uuid.UUID) (*progress.Step, error) {
	var record stepRecord
	if err := p.api.post(ctx, fmt.Sprintf("/api/progress-steps/%s/toggle", id), nil, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (p *Progress) Delete(ctx context.Context, id uuid.UUID) error {
	return p.api.delete(ctx, "/api/progress-steps/"+id.String())
}

type Links struct {
	api *API
}

func (l *Links) List(ctx context.Context) ([]*link.Link, error) {
	var records []linkRecord
	if err := l.api.get(ctx, "/api/client-links", &records); err != nil {
		return nil, err
	}

	list := make([]*link.Link, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (l *Links) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*link.Link, error) {
	var records []linkRecord
	if err := l.api.get(ctx, "/api/client-links?clientId="+clientID.String(), &records); err != nil {
		return nil, err
	}

	list := make([]*link.Link, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (l *Links) Create(ctx context.Context, params sync.LinkParams) (*link.Link, error) {
	body := struct {
		ClientID uuid.UUID `json:"clientId"`
		Title    string    `json:"title"`
		URL      string    `json:"url"`
		Category string    `json:"category"`
	}{params.ClientID, params.Title, params.URL, params.Category}

	var record linkRecord
	if err := l.api.post(ctx, "/api/client-links", body, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (l *Links) Delete(ctx context.Context, id uuid.UUID) error {
	return l.api.delete(ctx, "/api/client-links/"+id.String())
}

type Users struct {
	api *API
}

func (u *Users) List(ctx context.Context) ([]*user.User, error) {
	var records []userRecord
	if err := u.api.get(ctx, "/api/users", &records); err != nil {
		return nil, err
	}

	list := make([]*user.User, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

// Login authenticates and keeps the returned token on the shared
// transport, so every adapter picks it up.
func (u *Users) Login(ctx context.Context, email, password string) (*user.User, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var record struct {
		Success bool       `json:"success"`
		User    userRecord `json:"user"`
		Token   string     `json:"token"`
	}
	if err := u.api.post(ctx, "/api/auth/login", body, &record); err != nil {
		return nil, err
	}

	u.api.SetToken(record.Token)

	return record.User.toDomain(), nil
}

type Tags struct {
	api *API
}

func (t *Tags) List(ctx context.Context) ([]*client.Tag, error) {
	var records []tagRecord
	if err := t.api.get(ctx, "/api/tags", &records); err != nil {
		return nil, err
	}

	list := make([]*client.Tag, len(records))
	for i, r := range records {
		list[i] = r.toDomain()
	}
	return list, nil
}

func (t *Tags) Create(ctx context.Context, name, color string) (*client.Tag, error) {
	body := struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}{name, color}

	var record tagRecord
	if err := t.api.post(ctx, "/api/tags", body, &record); err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}
