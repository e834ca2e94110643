package sync_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/chat"
	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/link"
	"github.com/sentra-hq/sentra-cms/internal/progress"
	appsync "github.com/sentra-hq/sentra-cms/internal/sync"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

// Hand-rolled fakes: every unset func returns empty success.

type fakeClients struct {
	listFunc   func(ctx context.Context) ([]*client.Client, error)
	deleteFunc func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeClients) List(ctx context.Context) ([]*client.Client, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeClients) Create(_ context.Context, params appsync.ClientParams) (*client.Client, error) {
	return &client.Client{ID: uuid.New(), Name: params.Name, Status: params.Status}, nil
}

func (f *fakeClients) Update(_ context.Context, id uuid.UUID, params appsync.ClientParams) (*client.Client, error) {
	return &client.Client{ID: id, Name: params.Name}, nil
}

func (f *fakeClients) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

type fakeInvoices struct {
	listFunc   func(ctx context.Context) ([]*billing.Invoice, error)
	createFunc func(ctx context.Context, params appsync.InvoiceParams) (*billing.Invoice, error)
}

func (f *fakeInvoices) List(ctx context.Context) ([]*billing.Invoice, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeInvoices) Create(ctx context.Context, params appsync.InvoiceParams) (*billing.Invoice, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, params)
	}
	// Mirror the server: fresh invoices start unpaid.
	return &billing.Invoice{
		ID:          uuid.New(),
		ClientID:    params.ClientID,
		PackageName: params.PackageName,
		Amount:      params.Amount,
		Due:         params.Amount,
		Status:      billing.InvoicePending,
		CreatedAt:   time.Now(),
	}, nil
}

func (f *fakeInvoices) Delete(context.Context, uuid.UUID) error { return nil }

type fakePayments struct {
	listFunc   func(ctx context.Context) ([]*billing.Payment, error)
	createFunc func(ctx context.Context, params appsync.PaymentParams) (*billing.Payment, *billing.Invoice, error)
}

func (f *fakePayments) List(ctx context.Context) ([]*billing.Payment, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakePayments) Create(ctx context.Context, params appsync.PaymentParams) (*billing.Payment, *billing.Invoice, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, params)
	}
	return nil, nil, errors.New("not configured")
}

func (f *fakePayments) Delete(context.Context, uuid.UUID) error { return nil }

type fakeCalendar struct {
	listFunc func(ctx context.Context) ([]*calendar.Event, error)
}

func (f *fakeCalendar) List(ctx context.Context) ([]*calendar.Event, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeCalendar) Create(_ context.Context, params appsync.EventParams) (*calendar.Event, error) {
	return &calendar.Event{ID: uuid.New(), ClientID: params.ClientID, Title: params.Title, Type: params.Type}, nil
}

func (f *fakeCalendar) Delete(context.Context, uuid.UUID) error { return nil }

type fakeChats struct {
	listFunc     func(ctx context.Context) ([]*chat.Chat, error)
	messagesFunc func(ctx context.Context, chatID uuid.UUID) ([]*chat.Message, error)
}

func (f *fakeChats) List(ctx context.Context) ([]*chat.Chat, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeChats) Messages(ctx context.Context, chatID uuid.UUID) ([]*chat.Message, error) {
	if f.messagesFunc != nil {
		return f.messagesFunc(ctx, chatID)
	}
	return nil, nil
}

func (f *fakeChats) Send(_ context.Context, chatID uuid.UUID, sender chat.Sender, content string) (*chat.Message, error) {
	return &chat.Message{ID: uuid.New(), ChatID: chatID, Sender: sender, Content: content, SentAt: time.Now()}, nil
}

func (f *fakeChats) MarkRead(context.Context, uuid.UUID) error { return nil }

type fakeProgress struct {
	listFunc func(ctx context.Context) ([]*progress.Step, error)
}

func (f *fakeProgress) List(ctx context.Context) ([]*progress.Step, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeProgress) Create(_ context.Context, params appsync.StepParams) (*progress.Step, error) {
	return &progress.Step{ID: uuid.New(), ClientID: params.ClientID, Title: params.Title, Deadline: params.Deadline}, nil
}

func (f *fakeProgress) Toggle(_ context.Context, id uuid.UUID) (*progress.Step, error) {
	return &progress.Step{ID: id, Completed: true}, nil
}

func (f *fakeProgress) Delete(context.Context, uuid.UUID) error { return nil }

type fakeLinks struct {
	listFunc func(ctx context.Context) ([]*link.Link, error)
}

func (f *fakeLinks) List(ctx context.Context) ([]*link.Link, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeLinks) ListByClient(ctx context.Context, _ uuid.UUID) ([]*link.Link, error) {
	return f.List(ctx)
}

func (f *fakeLinks) Create(_ context.Context, params appsync.LinkParams) (*link.Link, error) {
	return &link.Link{ID: uuid.New(), ClientID: params.ClientID, Title: params.Title, URL: params.URL}, nil
}

func (f *fakeLinks) Delete(context.Context, uuid.UUID) error { return nil }

type fakeUsers struct {
	loginFunc func(ctx context.Context, email, password string) (*user.User, error)
}

func (f *fakeUsers) List(context.Context) ([]*user.User, error) { return nil, nil }

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*user.User, error) {
	if f.loginFunc != nil {
		return f.loginFunc(ctx, email, password)
	}
	return &user.User{ID: uuid.New(), Email: email}, nil
}

type fakeTags struct{}

func (f *fakeTags) List(context.Context) ([]*client.Tag, error) { return nil, nil }

func (f *fakeTags) Create(_ context.Context, name, color string) (*client.Tag, error) {
	return &client.Tag{ID: uuid.New(), Name: name, Color: color}, nil
}

type fixture struct {
	clients  *fakeClients
	invoices *fakeInvoices
	payments *fakePayments
	calendar *fakeCalendar
	chats    *fakeChats
	progress *fakeProgress
	links    *fakeLinks
	users    *fakeUsers
	tags     *fakeTags
}

func newFixture() *fixture {
	return &fixture{
		clients:  &fakeClients{},
		invoices: &fakeInvoices{},
		payments: &fakePayments{},
		calendar: &fakeCalendar{},
		chats:    &fakeChats{},
		progress: &fakeProgress{},
		links:    &fakeLinks{},
		users:    &fakeUsers{},
		tags:     &fakeTags{},
	}
}

func (f *fixture) sources() appsync.Sources {
	return appsync.Sources{
		Clients:  f.clients,
		Invoices: f.invoices,
		Payments: f.payments,
		Calendar: f.calendar,
		Chats:    f.chats,
		Progress: f.progress,
		Links:    f.links,
		Users:    f.users,
		Tags:     f.tags,
	}
}

func newStore(f *fixture) *appsync.Store {
	return appsync.NewStore(f.sources(), slog.Default())
}

func TestStore_InvoiceThenPayment(t *testing.T) {
	clientID := uuid.New()
	invoiceID := uuid.New()

	f := newFixture()
	f.clients.listFunc = func(context.Context) ([]*client.Client, error) {
		return []*client.Client{{ID: clientID, Name: "Acme"}}, nil
	}
	f.invoices.createFunc = func(_ context.Context, params appsync.InvoiceParams) (*billing.Invoice, error) {
		return &billing.Invoice{
			ID:          invoiceID,
			ClientID:    params.ClientID,
			PackageName: params.PackageName,
			Amount:      params.Amount,
			Due:         params.Amount,
			Status:      billing.InvoicePending,
		}, nil
	}
	f.payments.createFunc = func(_ context.Context, params appsync.PaymentParams) (*billing.Payment, *billing.Invoice, error) {
		payment := &billing.Payment{
			ID:        uuid.New(),
			ClientID:  params.ClientID,
			InvoiceID: params.InvoiceID,
			Amount:    params.Amount,
			Status:    billing.PaymentCompleted,
		}
		invoice := &billing.Invoice{
			ID:       params.InvoiceID,
			ClientID: params.ClientID,
			Amount:   1000,
			Paid:     params.Amount,
			Due:      1000 - params.Amount,
			Status:   billing.StatusFor(1000, params.Amount),
		}
		return payment, invoice, nil
	}

	store := newStore(f)
	store.FetchClients(context.Background())

	invoiceResult := store.AddInvoice(context.Background(), appsync.InvoiceParams{
		ClientID:    clientID,
		PackageName: "Starter",
		Amount:      1000,
	})
	require.True(t, invoiceResult.OK)

	c := store.ClientByID(clientID)
	require.NotNil(t, c)
	assert.Equal(t, int64(1000), c.TotalSales)
	assert.Equal(t, int64(1000), c.Balance)
	assert.Equal(t, 1, c.InvoiceCount)
	assert.Contains(t, c.Tags, "Starter")

	assert.NotNil(t, store.TagByName("Starter"))

	var setupStep *progress.Step
	for _, step := range store.Steps() {
		if step.Title == "Starter - Package Setup" {
			setupStep = step
		}
	}
	require.NotNil(t, setupStep)
	assert.Equal(t, clientID, setupStep.ClientID)

	paymentResult := store.AddPayment(context.Background(), appsync.PaymentParams{
		ClientID:  clientID,
		InvoiceID: invoiceResult.Record.ID,
		Amount:    400,
	})
	require.True(t, paymentResult.OK)

	c = store.ClientByID(clientID)
	assert.Equal(t, int64(400), c.TotalCollection)
	assert.Equal(t, int64(600), c.Balance)
	assert.Equal(t, c.TotalSales-c.TotalCollection, c.Balance)

	inv := store.InvoiceByID(invoiceID)
	require.NotNil(t, inv)
	assert.Equal(t, int64(400), inv.Paid)
	assert.Equal(t, int64(600), inv.Due)
	assert.Equal(t, billing.InvoicePartial, inv.Status)
}

func TestStore_AddInvoice_Failure_LeavesStateUntouched(t *testing.T) {
	clientID := uuid.New()

	f := newFixture()
	f.clients.listFunc = func(context.Context) ([]*client.Client, error) {
		return []*client.Client{{ID: clientID, Name: "Acme"}}, nil
	}
	f.invoices.createFunc = func(context.Context, appsync.InvoiceParams) (*billing.Invoice, error) {
		return nil, errors.New("server rejected")
	}

	store := newStore(f)
	store.FetchClients(context.Background())

	result := store.AddInvoice(context.Background(), appsync.InvoiceParams{
		ClientID:    clientID,
		PackageName: "Starter",
		Amount:      1000,
	})

	assert.False(t, result.OK)
	assert.Contains(t, result.Reason, "server rejected")
	assert.Empty(t, store.Invoices())
	assert.Empty(t, store.Steps())

	c := store.ClientByID(clientID)
	assert.Zero(t, c.TotalSales)
	assert.Zero(t, c.Balance)
}

func TestStore_DeleteClient_CascadesLocalCollections(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()

	f := newFixture()
	f.clients.listFunc = func(context.Context) ([]*client.Client, error) {
		return []*client.Client{{ID: keep}, {ID: drop}}, nil
	}
	f.invoices.listFunc = func(context.Context) ([]*billing.Invoice, error) {
		return []*billing.Invoice{{ID: uuid.New(), ClientID: keep}, {ID: uuid.New(), ClientID: drop}}, nil
	}
	f.payments.listFunc = func(context.Context) ([]*billing.Payment, error) {
		return []*billing.Payment{{ID: uuid.New(), ClientID: drop}}, nil
	}
	f.calendar.listFunc = func(context.Context) ([]*calendar.Event, error) {
		return []*calendar.Event{{ID: uuid.New(), ClientID: keep}, {ID: uuid.New(), ClientID: drop}}, nil
	}
	f.chats.listFunc = func(context.Context) ([]*chat.Chat, error) {
		return []*chat.Chat{{ID: uuid.New(), ClientID: drop}}, nil
	}
	f.links.listFunc = func(context.Context) ([]*link.Link, error) {
		return []*link.Link{{ID: uuid.New(), ClientID: keep}, {ID: uuid.New(), ClientID: drop}}, nil
	}

	store := newStore(f)
	ctx := context.Background()
	store.FetchClients(ctx)
	store.FetchInvoices(ctx)
	store.FetchPayments(ctx)
	store.FetchEvents(ctx)
	store.FetchChats(ctx)
	store.FetchLinks(ctx)

	result := store.DeleteClient(ctx, drop)
	require.True(t, result.OK)

	assert.Len(t, store.Clients(), 1)
	assert.Equal(t, keep, store.Clients()[0].ID)

	require.Len(t, store.Invoices(), 1)
	assert.Equal(t, keep, store.Invoices()[0].ClientID)

	assert.Empty(t, store.Payments())
	assert.Empty(t, store.Chats())

	require.Len(t, store.Events(), 1)
	assert.Equal(t, keep, store.Events()[0].ClientID)

	require.Len(t, store.Links(), 1)
	assert.Equal(t, keep, store.Links()[0].ClientID)
}

func TestStore_FetchFailure_EmptiesAndClearsLoading(t *testing.T) {
	f := newFixture()
	f.clients.listFunc = func(context.Context) ([]*client.Client, error) {
		return []*client.Client{{ID: uuid.New()}}, nil
	}

	store := newStore(f)
	store.FetchClients(context.Background())
	require.Len(t, store.Clients(), 1)

	f.clients.listFunc = func(context.Context) ([]*client.Client, error) {
		return nil, errors.New("connection refused")
	}
	store.FetchClients(context.Background())

	assert.Empty(t, store.Clients())
	assert.False(t, store.Loading(appsync.CollectionClients))
}

func TestStore_StaleResponseDiscarded(t *testing.T) {
	first := make(chan []*client.Client)
	second := make(chan []*client.Client)

	var calls atomic.Int64

	f := newFixture()
	f.clients.listFunc = func(context.Context) ([]*client.Client, error) {
		if calls.Add(1) == 1 {
			return <-first, nil
		}
		return <-second, nil
	}

	store := newStore(f)

	done1 := make(chan struct{})
	done2 := make(chan struct{})
	go func() {
		defer close(done1)
		store.FetchClients(context.Background())
	}()

	// Make sure the first fetch took its sequence number before the
	// second one starts.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	go func() {
		defer close(done2)
		store.FetchClients(context.Background())
	}()
	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, time.Millisecond)

	fresh := []*client.Client{{ID: uuid.New(), Name: "fresh"}}
	stale := []*client.Client{{ID: uuid.New(), Name: "stale"}}

	// The newer fetch resolves first; the older response arrives late
	// and must be dropped.
	second <- fresh
	<-done2
	first <- stale
	<-done1

	clients := store.Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "fresh", clients[0].Name)
	assert.False(t, store.Loading(appsync.CollectionClients))
}

func TestStore_FetchChats_PreservesLoadedMessages(t *testing.T) {
	chatID := uuid.New()

	f := newFixture()
	f.chats.listFunc = func(context.Context) ([]*chat.Chat, error) {
		return []*chat.Chat{{ID: chatID, UnreadCount: 2}}, nil
	}
	f.chats.messagesFunc = func(_ context.Context, id uuid.UUID) ([]*chat.Message, error) {
		return []*chat.Message{{ID: uuid.New(), ChatID: id, Content: "hello"}}, nil
	}

	store := newStore(f)
	ctx := context.Background()

	store.FetchChats(ctx)
	store.ReloadMessages(ctx, chatID)
	require.Len(t, store.Chats()[0].Messages, 1)

	// A refresh returns the chat without its message history.
	store.FetchChats(ctx)

	chats := store.Chats()
	require.Len(t, chats, 1)
	assert.Len(t, chats[0].Messages, 1)
	assert.Equal(t, "hello", chats[0].Messages[0].Content)
}

func TestStore_UnreadMessagesCount(t *testing.T) {
	f := newFixture()
	store := newStore(f)

	assert.Zero(t, store.UnreadMessagesCount())

	f.chats.listFunc = func(context.Context) ([]*chat.Chat, error) {
		return []*chat.Chat{
			{ID: uuid.New(), UnreadCount: 3},
			{ID: uuid.New(), UnreadCount: 0},
			{ID: uuid.New(), UnreadCount: 4},
		}, nil
	}
	store.FetchChats(context.Background())

	assert.Equal(t, 7, store.UnreadMessagesCount())
}

func TestStore_Login(t *testing.T) {
	f := newFixture()
	f.users.loginFunc = func(_ context.Context, email, _ string) (*user.User, error) {
		if email != "admin@sentra.dev" {
			return nil, errors.New("account not found")
		}
		return &user.User{ID: uuid.New(), Email: email, Role: user.RoleSuperAdmin}, nil
	}

	store := newStore(f)

	failed := store.Login(context.Background(), "nobody@sentra.dev", "pw")
	assert.False(t, failed.OK)
	assert.Nil(t, store.CurrentUser())

	succeeded := store.Login(context.Background(), "admin@sentra.dev", "pw")
	require.True(t, succeeded.OK)
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "admin@sentra.dev", store.CurrentUser().Email)
}

func TestPoller_StartStopIdempotent(t *testing.T) {
	var ticks atomic.Int64
	p := appsync.NewPoller(5*time.Millisecond, func(context.Context) {
		ticks.Add(1)
	})

	// Stopping before starting is a no-op.
	p.Stop()
	assert.False(t, p.Running())

	p.Start()
	p.Start()
	assert.True(t, p.Running())

	require.Eventually(t, func() bool { return ticks.Load() > 0 }, time.Second, time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	p.Stop()

	settled := ticks.Load()
	time.Sleep(25 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())
}

func TestPoller_TickRunsTaskOnce(t *testing.T) {
	var ticks atomic.Int64
	p := appsync.NewPoller(time.Hour, func(context.Context) {
		ticks.Add(1)
	})

	p.Tick(context.Background())
	assert.Equal(t, int64(1), ticks.Load())
}
