package webhook_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentra-hq/sentra-cms/internal/calendar"
	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/webhook"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"contact":{"email":"a@b.c"}}`)

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, webhook.VerifySignature("s3cret", body, sign("s3cret", body)))
	})

	t.Run("ValidWithPrefix", func(t *testing.T) {
		assert.NoError(t, webhook.VerifySignature("s3cret", body, "sha256="+sign("s3cret", body)))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		err := webhook.VerifySignature("s3cret", body, sign("other", body))
		assert.ErrorIs(t, err, webhook.ErrBadSignature)
	})

	t.Run("TamperedBody", func(t *testing.T) {
		err := webhook.VerifySignature("s3cret", []byte(`{}`), sign("s3cret", body))
		assert.ErrorIs(t, err, webhook.ErrBadSignature)
	})

	t.Run("EmptySecretDisablesCheck", func(t *testing.T) {
		assert.NoError(t, webhook.VerifySignature("", body, "anything"))
	})
}

type matcherFunc func(ctx context.Context, email, phone string) (*client.Client, error)

func (f matcherFunc) FindByEmailOrPhone(ctx context.Context, email, phone string) (*client.Client, error) {
	return f(ctx, email, phone)
}

type creatorFunc func(ctx context.Context, params calendar.CreateParams) (*calendar.Event, error)

func (f creatorFunc) Create(ctx context.Context, params calendar.CreateParams) (*calendar.Event, error) {
	return f(ctx, params)
}

func payload(email, phone string) *webhook.AppointmentPayload {
	p := &webhook.AppointmentPayload{}
	p.Contact.Name = "Jamie"
	p.Contact.Email = email
	p.Contact.Phone = phone
	p.Appointment.Title = "Kickoff"
	p.Appointment.StartTime = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	p.Appointment.EndTime = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	p.Appointment.Notes = "bring the contract"
	return p
}

func TestService_Ingest_MatchedContact(t *testing.T) {
	matched := &client.Client{ID: uuid.New(), Name: "Acme", Email: "jamie@acme.dev"}

	var gotParams calendar.CreateParams
	svc := webhook.NewService(
		matcherFunc(func(_ context.Context, email, _ string) (*client.Client, error) {
			assert.Equal(t, "jamie@acme.dev", email)
			return matched, nil
		}),
		creatorFunc(func(_ context.Context, params calendar.CreateParams) (*calendar.Event, error) {
			gotParams = params
			return &calendar.Event{ID: uuid.New(), ClientID: params.ClientID, Title: params.Title}, nil
		}),
	)

	outcome, err := svc.Ingest(context.Background(), payload("jamie@acme.dev", ""), calendar.TypeOnboarding)
	require.NoError(t, err)

	assert.True(t, outcome.Matched)
	assert.Equal(t, "Acme", outcome.ClientName)
	require.NotNil(t, outcome.Event)

	assert.Equal(t, matched.ID, gotParams.ClientID)
	assert.Equal(t, "Kickoff", gotParams.Title)
	assert.Equal(t, calendar.TypeOnboarding, gotParams.Type)
	assert.Equal(t, "14:30", gotParams.StartTime)
	assert.Equal(t, "15:00", gotParams.EndTime)
}

func TestService_Ingest_UnmatchedContactIsWarning(t *testing.T) {
	svc := webhook.NewService(
		matcherFunc(func(context.Context, string, string) (*client.Client, error) {
			return nil, client.ErrNotFound
		}),
		creatorFunc(func(context.Context, calendar.CreateParams) (*calendar.Event, error) {
			t.Fatal("no event should be created for an unmatched contact")
			return nil, nil
		}),
	)

	outcome, err := svc.Ingest(context.Background(), payload("ghost@nowhere.dev", ""), calendar.TypeHandover)
	require.NoError(t, err)

	assert.False(t, outcome.Matched)
	assert.Nil(t, outcome.Event)
}

func TestService_Ingest_DefaultTitle(t *testing.T) {
	matched := &client.Client{ID: uuid.New(), Name: "Acme"}

	svc := webhook.NewService(
		matcherFunc(func(context.Context, string, string) (*client.Client, error) {
			return matched, nil
		}),
		creatorFunc(func(_ context.Context, params calendar.CreateParams) (*calendar.Event, error) {
			return &calendar.Event{Title: params.Title}, nil
		}),
	)

	p := payload("jamie@acme.dev", "")
	p.Appointment.Title = ""

	outcome, err := svc.Ingest(context.Background(), p, calendar.TypeHandover)
	require.NoError(t, err)
	assert.Equal(t, "handover call with Acme", outcome.Event.Title)
}

func TestService_Ingest_MatcherError(t *testing.T) {
	svc := webhook.NewService(
		matcherFunc(func(context.Context, string, string) (*client.Client, error) {
			return nil, errors.New("db down")
		}),
		creatorFunc(func(context.Context, calendar.CreateParams) (*calendar.Event, error) {
			return nil, nil
		}),
	)

	_, err := svc.Ingest(context.Background(), payload("jamie@acme.dev", ""), calendar.TypeOnboarding)
	assert.Error(t, err)
}
