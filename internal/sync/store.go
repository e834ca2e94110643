package sync

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
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

// Collection names the entity slices the store holds.
type Collection string

const (
	CollectionClients  Collection = "clients"
	CollectionInvoices Collection = "invoices"
	CollectionPayments Collection = "payments"
	CollectionEvents   Collection = "events"
	CollectionChats    Collection = "chats"
	CollectionSteps    Collection = "steps"
	CollectionLinks    Collection = "links"
	CollectionUsers    Collection = "users"
	CollectionTags     Collection = "tags"
)

const defaultTagColor = "#6366f1"

// Store is the single source of truth for the portal session. All reads
// and writes go through it; views never talk to the API directly.
//
// Each fetch is tagged with a per-collection sequence number taken when
// the request is issued. A response whose sequence is older than the
// last applied one is discarded, so overlapping fetches of the same
// collection cannot apply out of order.
type Store struct {
	mu      sync.Mutex
	sources Sources
	logger  *slog.Logger

	clients  []*client.Client
	invoices []*billing.Invoice
	payments []*billing.Payment
	events   []*calendar.Event
	chats    []*chat.Chat
	steps    []*progress.Step
	links    []*link.Link
	users    []*user.User
	tags     []*client.Tag

	loading map[Collection]bool
	issued  map[Collection]uint64
	applied map[Collection]uint64

	currentUser    *user.User
	selectedClient *uuid.UUID
}

func NewStore(sources Sources, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		sources: sources,
		logger:  logger,
		loading: make(map[Collection]bool),
		issued:  make(map[Collection]uint64),
		applied: make(map[Collection]uint64),
	}
}

// begin marks the collection as loading and hands out the next sequence
// number for the fetch being issued.
func (s *Store) begin(c Collection) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.issued[c]++
	s.loading[c] = true

	return s.issued[c]
}

// finish clears the loading flag unless a newer fetch is still in
// flight, in which case that fetch owns the flag. Caller holds mu.
func (s *Store) finish(c Collection, seq uint64) {
	if seq == s.issued[c] {
		s.loading[c] = false
	}
}

// fresh reports whether a response with the given sequence may be
// applied, and records it as applied if so. Caller holds mu.
func (s *Store) fresh(c Collection, seq uint64) bool {
	if seq <= s.applied[c] {
		return false
	}
	s.applied[c] = seq

	return true
}

// Fetch operations: full replace on success, empty slice on failure,
// loading flag cleared either way. Fetch errors are logged and absorbed;
// the views only ever observe empty data.

func (s *Store) FetchClients(ctx context.Context) {
	seq := s.begin(CollectionClients)
	list, err := s.sources.Clients.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionClients, seq)

	if !s.fresh(CollectionClients, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch clients", "error", err)
		s.clients = nil
		return
	}
	s.clients = list
}

func (s *Store) FetchInvoices(ctx context.Context) {
	seq := s.begin(CollectionInvoices)
	list, err := s.sources.Invoices.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionInvoices, seq)

	if !s.fresh(CollectionInvoices, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch invoices", "error", err)
		s.invoices = nil
		return
	}
	s.invoices = list
}

func (s *Store) FetchPayments(ctx context.Context) {
	seq := s.begin(CollectionPayments)
	list, err := s.sources.Payments.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionPayments, seq)

	if !s.fresh(CollectionPayments, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch payments", "error", err)
		s.payments = nil
		return
	}
	s.payments = list
}

func (s *Store) FetchEvents(ctx context.Context) {
	seq := s.begin(CollectionEvents)
	list, err := s.sources.Calendar.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionEvents, seq)

	if !s.fresh(CollectionEvents, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch calendar events", "error", err)
		s.events = nil
		return
	}
	s.events = list
}

// FetchChats replaces the chat list but preserves already-loaded message
// history: a refreshed chat record with no messages keeps the messages
// of the local chat with the same id.
func (s *Store) FetchChats(ctx context.Context) {
	seq := s.begin(CollectionChats)
	list, err := s.sources.Chats.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionChats, seq)

	if !s.fresh(CollectionChats, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch chats", "error", err)
		s.chats = nil
		return
	}

	held := make(map[uuid.UUID][]*chat.Message, len(s.chats))
	for _, c := range s.chats {
		if len(c.Messages) > 0 {
			held[c.ID] = c.Messages
		}
	}
	for _, c := range list {
		if msgs, found := held[c.ID]; found && len(c.Messages) == 0 {
			c.Messages = msgs
		}
	}
	s.chats = list
}

func (s *Store) FetchSteps(ctx context.Context) {
	seq := s.begin(CollectionSteps)
	list, err := s.sources.Progress.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionSteps, seq)

	if !s.fresh(CollectionSteps, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch progress steps", "error", err)
		s.steps = nil
		return
	}
	s.steps = list
}

// FetchLinks is scoped to the selected client when one is set.
func (s *Store) FetchLinks(ctx context.Context) {
	s.mu.Lock()
	selected := s.selectedClient
	s.mu.Unlock()

	seq := s.begin(CollectionLinks)

	var (
		list []*link.Link
		err  error
	)
	if selected != nil {
		list, err = s.sources.Links.ListByClient(ctx, *selected)
	} else {
		list, err = s.sources.Links.List(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionLinks, seq)

	if !s.fresh(CollectionLinks, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch client links", "error", err)
		s.links = nil
		return
	}
	s.links = list
}

func (s *Store) FetchUsers(ctx context.Context) {
	seq := s.begin(CollectionUsers)
	list, err := s.sources.Users.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionUsers, seq)

	if !s.fresh(CollectionUsers, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch users", "error", err)
		s.users = nil
		return
	}
	s.users = list
}

func (s *Store) FetchTags(ctx context.Context) {
	seq := s.begin(CollectionTags)
	list, err := s.sources.Tags.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.finish(CollectionTags, seq)

	if !s.fresh(CollectionTags, seq) {
		return
	}
	if err != nil {
		s.logger.Error("fetch tags", "error", err)
		s.tags = nil
		return
	}
	s.tags = list
}

// ReloadMessages replaces one chat's message history in place. Chats
// that disappeared from the list between issue and resolve are skipped.
func (s *Store) ReloadMessages(ctx context.Context, chatID uuid.UUID) {
	msgs, err := s.sources.Chats.Messages(ctx, chatID)
	if err != nil {
		s.logger.Error("reload chat messages", "chat", chatID, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.ID == chatID {
			c.Messages = msgs
			return
		}
	}
}

// Login authenticates against the API and records the session user.
func (s *Store) Login(ctx context.Context, email, password string) Result[*user.User] {
	u, err := s.sources.Users.Login(ctx, email, password)
	if err != nil {
		return failure[*user.User](err)
	}

	s.mu.Lock()
	s.currentUser = u
	s.mu.Unlock()

	return ok(u)
}

// Mutations. Each calls the remote first and applies local state only on
// success, returning a tagged Result either way. A failed mutation
// leaves every collection untouched.

func (s *Store) AddClient(ctx context.Context, params ClientParams) Result[*client.Client] {
	created, err := s.sources.Clients.Create(ctx, params)
	if err != nil {
		return failure[*client.Client](err)
	}

	s.mu.Lock()
	s.clients = append(s.clients, created)
	s.mu.Unlock()

	return ok(created)
}

func (s *Store) UpdateClient(ctx context.Context, id uuid.UUID, params ClientParams) Result[*client.Client] {
	updated, err := s.sources.Clients.Update(ctx, id, params)
	if err != nil {
		return failure[*client.Client](err)
	}

	s.mu.Lock()
	for i, c := range s.clients {
		if c.ID == id {
			s.clients[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return ok(updated)
}

// DeleteClient removes the client remotely, then cascades over every
// local collection holding records keyed to it.
func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Clients.Delete(ctx, id); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = deleteWhere(s.clients, func(c *client.Client) bool { return c.ID == id })
	s.invoices = deleteWhere(s.invoices, func(inv *billing.Invoice) bool { return inv.ClientID == id })
	s.payments = deleteWhere(s.payments, func(p *billing.Payment) bool { return p.ClientID == id })
	s.events = deleteWhere(s.events, func(e *calendar.Event) bool { return e.ClientID == id })
	s.chats = deleteWhere(s.chats, func(c *chat.Chat) bool { return c.ClientID == id })
	s.steps = deleteWhere(s.steps, func(st *progress.Step) bool { return st.ClientID == id })
	s.links = deleteWhere(s.links, func(l *link.Link) bool { return l.ClientID == id })

	if s.selectedClient != nil && *s.selectedClient == id {
		s.selectedClient = nil
	}

	return ok(id)
}

// AddInvoice creates the invoice remotely, then applies the derived
// local mutations: the owning client's aggregates, the package tag and
// the package-setup progress step. The server performs the same side
// effects; applying them locally keeps the views current until the next
// poll confirms.
func (s *Store) AddInvoice(ctx context.Context, params InvoiceParams) Result[*billing.Invoice] {
	created, err := s.sources.Invoices.Create(ctx, params)
	if err != nil {
		return failure[*billing.Invoice](err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(s.invoices, created)

	now := time.Now()
	if c := s.clientByIDLocked(created.ClientID); c != nil {
		c.TotalSales += created.Amount
		c.Balance += created.Amount
		c.InvoiceCount++
		c.UpdatedAt = &now

		if created.PackageName != "" && !slices.Contains(c.Tags, created.PackageName) {
			c.Tags = append(c.Tags, created.PackageName)
		}
	}

	if created.PackageName != "" {
		if s.tagByNameLocked(created.PackageName) == nil {
			s.tags = append(s.tags, &client.Tag{
				ID:        uuid.New(),
				Name:      created.PackageName,
				Color:     defaultTagColor,
				CreatedAt: now,
			})
		}

		s.steps = append(s.steps, &progress.Step{
			ID:        uuid.New(),
			ClientID:  created.ClientID,
			Title:     fmt.Sprintf("%s - Package Setup", created.PackageName),
			Deadline:  now.AddDate(0, 0, 14),
			CreatedAt: now,
		})
	}

	return ok(created)
}

// DeleteInvoice mirrors the server's aggregate reversal locally.
func (s *Store) DeleteInvoice(ctx context.Context, id uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Invoices.Delete(ctx, id); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.ID != id {
			continue
		}
		if c := s.clientByIDLocked(inv.ClientID); c != nil {
			c.TotalSales -= inv.Amount
			c.TotalCollection -= inv.Paid
			c.Balance -= inv.Due
			c.InvoiceCount--
		}
		break
	}
	s.invoices = deleteWhere(s.invoices, func(inv *billing.Invoice) bool { return inv.ID == id })
	s.payments = deleteWhere(s.payments, func(p *billing.Payment) bool { return p.InvoiceID == id })

	return ok(id)
}

// AddPayment creates the payment remotely and reconciles the invoice
// from the server's response, so paid/due/status never drift from what
// the database committed. The client's collection aggregates are bumped
// locally.
func (s *Store) AddPayment(ctx context.Context, params PaymentParams) Result[*billing.Payment] {
	created, updatedInvoice, err := s.sources.Payments.Create(ctx, params)
	if err != nil {
		return failure[*billing.Payment](err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.payments = append(s.payments, created)

	for i, inv := range s.invoices {
		if inv.ID == updatedInvoice.ID {
			s.invoices[i] = updatedInvoice
			break
		}
	}

	if c := s.clientByIDLocked(created.ClientID); c != nil {
		now := time.Now()
		c.TotalCollection += created.Amount
		c.Balance -= created.Amount
		c.UpdatedAt = &now
	}

	return ok(created)
}

func (s *Store) DeletePayment(ctx context.Context, id uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Payments.Delete(ctx, id); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.ID != id {
			continue
		}
		if c := s.clientByIDLocked(p.ClientID); c != nil {
			c.TotalCollection -= p.Amount
			c.Balance += p.Amount
		}
		for _, inv := range s.invoices {
			if inv.ID == p.InvoiceID {
				inv.Paid -= p.Amount
				inv.Due += p.Amount
				inv.Status = billing.StatusFor(inv.Amount, inv.Paid)
				break
			}
		}
		break
	}
	s.payments = deleteWhere(s.payments, func(p *billing.Payment) bool { return p.ID == id })

	return ok(id)
}

func (s *Store) AddEvent(ctx context.Context, params EventParams) Result[*calendar.Event] {
	created, err := s.sources.Calendar.Create(ctx, params)
	if err != nil {
		return failure[*calendar.Event](err)
	}

	s.mu.Lock()
	s.events = append(s.events, created)
	s.mu.Unlock()

	return ok(created)
}

func (s *Store) DeleteEvent(ctx context.Context, id uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Calendar.Delete(ctx, id); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	s.events = deleteWhere(s.events, func(e *calendar.Event) bool { return e.ID == id })
	s.mu.Unlock()

	return ok(id)
}

func (s *Store) AddStep(ctx context.Context, params StepParams) Result[*progress.Step] {
	created, err := s.sources.Progress.Create(ctx, params)
	if err != nil {
		return failure[*progress.Step](err)
	}

	s.mu.Lock()
	s.steps = append(s.steps, created)
	s.mu.Unlock()

	return ok(created)
}

func (s *Store) ToggleStep(ctx context.Context, id uuid.UUID) Result[*progress.Step] {
	toggled, err := s.sources.Progress.Toggle(ctx, id)
	if err != nil {
		return failure[*progress.Step](err)
	}

	s.mu.Lock()
	for i, st := range s.steps {
		if st.ID == id {
			s.steps[i] = toggled
			break
		}
	}
	s.mu.Unlock()

	return ok(toggled)
}

func (s *Store) DeleteStep(ctx context.Context, id uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Progress.Delete(ctx, id); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	s.steps = deleteWhere(s.steps, func(st *progress.Step) bool { return st.ID == id })
	s.mu.Unlock()

	return ok(id)
}

func (s *Store) AddLink(ctx context.Context, params LinkParams) Result[*link.Link] {
	created, err := s.sources.Links.Create(ctx, params)
	if err != nil {
		return failure[*link.Link](err)
	}

	s.mu.Lock()
	s.links = append(s.links, created)
	s.mu.Unlock()

	return ok(created)
}

func (s *Store) DeleteLink(ctx context.Context, id uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Links.Delete(ctx, id); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	s.links = deleteWhere(s.links, func(l *link.Link) bool { return l.ID == id })
	s.mu.Unlock()

	return ok(id)
}

func (s *Store) SendMessage(ctx context.Context, chatID uuid.UUID, sender chat.Sender, content string) Result[*chat.Message] {
	msg, err := s.sources.Chats.Send(ctx, chatID, sender, content)
	if err != nil {
		return failure[*chat.Message](err)
	}

	s.mu.Lock()
	for _, c := range s.chats {
		if c.ID == chatID {
			c.Messages = append(c.Messages, msg)
			c.LastMessageAt = &msg.SentAt
			if sender == chat.SenderClient {
				c.UnreadCount++
			}
			break
		}
	}
	s.mu.Unlock()

	return ok(msg)
}

func (s *Store) MarkChatRead(ctx context.Context, chatID uuid.UUID) Result[uuid.UUID] {
	if err := s.sources.Chats.MarkRead(ctx, chatID); err != nil {
		return failure[uuid.UUID](err)
	}

	s.mu.Lock()
	for _, c := range s.chats {
		if c.ID == chatID {
			c.UnreadCount = 0
			break
		}
	}
	s.mu.Unlock()

	return ok(chatID)
}

func (s *Store) AddTag(ctx context.Context, name, color string) Result[*client.Tag] {
	created, err := s.sources.Tags.Create(ctx, name, color)
	if err != nil {
		return failure[*client.Tag](err)
	}

	s.mu.Lock()
	if s.tagByNameLocked(created.Name) == nil {
		s.tags = append(s.tags, created)
	}
	s.mu.Unlock()

	return ok(created)
}

// Refresh is one poll tick: chats first, then each chat's message
// history, then the main collections, then links scoped to the selected
// client. A failure in any fetch never aborts the siblings.
func (s *Store) Refresh(ctx context.Context) {
	s.FetchChats(ctx)
	for _, c := range s.Chats() {
		s.ReloadMessages(ctx, c.ID)
	}

	s.FetchClients(ctx)
	s.FetchInvoices(ctx)
	s.FetchPayments(ctx)
	s.FetchUsers(ctx)

	if s.SelectedClient() != nil {
		s.FetchLinks(ctx)
	}
}

// Accessors return copies of the slice headers; callers must not mutate
// the records.

func (s *Store) Clients() []*client.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*client.Client(nil), s.clients...)
}

func (s *Store) Invoices() []*billing.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*billing.Invoice(nil), s.invoices...)
}

func (s *Store) Payments() []*billing.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*billing.Payment(nil), s.payments...)
}

func (s *Store) Events() []*calendar.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*calendar.Event(nil), s.events...)
}

func (s *Store) Chats() []*chat.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*chat.Chat(nil), s.chats...)
}

func (s *Store) Steps() []*progress.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*progress.Step(nil), s.steps...)
}

func (s *Store) Links() []*link.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*link.Link(nil), s.links...)
}

func (s *Store) Users() []*user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*user.User(nil), s.users...)
}

func (s *Store) Tags() []*client.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*client.Tag(nil), s.tags...)
}

func (s *Store) Loading(c Collection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[c]
}

func (s *Store) CurrentUser() *user.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

func (s *Store) SelectClient(id uuid.UUID) {
	s.mu.Lock()
	s.selectedClient = &id
	s.mu.Unlock()
}

func (s *Store) ClearSelectedClient() {
	s.mu.Lock()
	s.selectedClient = nil
	s.mu.Unlock()
}

func (s *Store) SelectedClient() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedClient == nil {
		return nil
	}
	id := *s.selectedClient
	return &id
}

// Derived getters: pure sums over current state, recomputed per call,
// zero on empty.

func (s *Store) TotalSales() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, c := range s.clients {
		total += c.TotalSales
	}
	return total
}

func (s *Store) TotalCollection() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, c := range s.clients {
		total += c.TotalCollection
	}
	return total
}

func (s *Store) TotalBalance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, c := range s.clients {
		total += c.Balance
	}
	return total
}

func (s *Store) UnreadMessagesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int
	for _, c := range s.chats {
		total += c.UnreadCount
	}
	return total
}

func (s *Store) ClientByID(id uuid.UUID) *client.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientByIDLocked(id)
}

func (s *Store) InvoiceByID(id uuid.UUID) *billing.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

func (s *Store) TagByName(name string) *client.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tagByNameLocked(name)
}

func (s *Store) clientByIDLocked(id uuid.UUID) *client.Client {
	for _, c := range s.clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Store) tagByNameLocked(name string) *client.Tag {
	for _, t := range s.tags {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func deleteWhere[T any](list []T, match func(T) bool) []T {
	kept := list[:0]
	for _, item := range list {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	// orphaned tail entries must not keep records alive
	clear(list[len(kept):])

	return kept
}
