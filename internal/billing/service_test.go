package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	"github.com/sentra-hq/sentra-cms/internal/client"
	"github.com/sentra-hq/sentra-cms/internal/progress"
)

func TestService_CreateInvoice(t *testing.T) {
	clientID := uuid.New()

	type testCase struct {
		name      string
		params    billing.CreateInvoiceParams
		setupMock func(repo *billing.MockRepository, tags *billing.MockTagEnsurer, steps *billing.MockStepCreator)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: billing.CreateInvoiceParams{
				ClientID:    clientID,
				PackageName: "Starter",
				Amount:      1000,
			},
			setupMock: func(repo *billing.MockRepository, tags *billing.MockTagEnsurer, steps *billing.MockStepCreator) {
				repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, inv *billing.Invoice) error {
						inv.ID = uuid.New()
						inv.CreatedAt = time.Now()
						return nil
					})
				tags.EXPECT().
					EnsureTag(gomock.Any(), "Starter", gomock.Any()).
					Return(&client.Tag{ID: uuid.New(), Name: "Starter"}, nil)
				steps.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params progress.CreateStepParams) (*progress.Step, error) {
						assert.Equal(t, "Starter - Package Setup", params.Title)
						assert.Equal(t, clientID, params.ClientID)
						return &progress.Step{ID: uuid.New(), Title: params.Title}, nil
					})
			},
		},
		{
			name: "NoPackageNameSkipsSideEffects",
			params: billing.CreateInvoiceParams{
				ClientID: clientID,
				Amount:   500,
			},
			setupMock: func(repo *billing.MockRepository, _ *billing.MockTagEnsurer, _ *billing.MockStepCreator) {
				repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "TagFailureIsBestEffort",
			params: billing.CreateInvoiceParams{
				ClientID:    clientID,
				PackageName: "Growth",
				Amount:      2500,
			},
			setupMock: func(repo *billing.MockRepository, tags *billing.MockTagEnsurer, steps *billing.MockStepCreator) {
				repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(nil)
				tags.EXPECT().
					EnsureTag(gomock.Any(), "Growth", gomock.Any()).
					Return(nil, errors.New("tag conflict"))
				steps.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(&progress.Step{}, nil)
			},
		},
		{
			name: "RepoError",
			params: billing.CreateInvoiceParams{
				ClientID:    clientID,
				PackageName: "Starter",
				Amount:      1000,
			},
			setupMock: func(repo *billing.MockRepository, _ *billing.MockTagEnsurer, _ *billing.MockStepCreator) {
				repo.EXPECT().
					CreateInvoice(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := billing.NewMockRepository(ctrl)
			tags := billing.NewMockTagEnsurer(ctrl)
			steps := billing.NewMockStepCreator(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, tags, steps)
			}

			svc := billing.NewService(repo, tags, steps)
			got, err := svc.CreateInvoice(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.params.Amount, got.Amount)
			assert.Equal(t, tt.params.Amount, got.Due)
			assert.Equal(t, billing.InvoicePending, got.Status)
		})
	}
}

func TestService_CreatePayment(t *testing.T) {
	clientID := uuid.New()
	invoiceID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := billing.NewMockRepository(ctrl)
		repo.EXPECT().
			CreatePayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *billing.Payment) (*billing.Invoice, error) {
				p.ID = uuid.New()
				return &billing.Invoice{
					ID:       invoiceID,
					ClientID: clientID,
					Amount:   1000,
					Paid:     p.Amount,
					Due:      1000 - p.Amount,
					Status:   billing.StatusFor(1000, p.Amount),
				}, nil
			})

		svc := billing.NewService(repo, billing.NewMockTagEnsurer(ctrl), billing.NewMockStepCreator(ctrl))

		payment, invoice, err := svc.CreatePayment(context.Background(), billing.CreatePaymentParams{
			ClientID:  clientID,
			InvoiceID: invoiceID,
			Amount:    400,
		})
		require.NoError(t, err)

		assert.Equal(t, billing.PaymentCompleted, payment.Status)
		assert.False(t, payment.PaidAt.IsZero())
		assert.Equal(t, int64(400), invoice.Paid)
		assert.Equal(t, int64(600), invoice.Due)
		assert.Equal(t, billing.InvoicePartial, invoice.Status)
	})

	t.Run("Overpayment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := billing.NewMockRepository(ctrl)
		repo.EXPECT().
			CreatePayment(gomock.Any(), gomock.Any()).
			Return(nil, billing.ErrOverpayment)

		svc := billing.NewService(repo, billing.NewMockTagEnsurer(ctrl), billing.NewMockStepCreator(ctrl))

		_, _, err := svc.CreatePayment(context.Background(), billing.CreatePaymentParams{
			ClientID:  clientID,
			InvoiceID: invoiceID,
			Amount:    5000,
		})
		assert.ErrorIs(t, err, billing.ErrOverpayment)
	})
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, billing.InvoicePending, billing.StatusFor(1000, 0))
	assert.Equal(t, billing.InvoicePartial, billing.StatusFor(1000, 400))
	assert.Equal(t, billing.InvoicePaid, billing.StatusFor(1000, 1000))
}
