package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/catatusaha/internal/production"
	"github.com/MrJamesThe3rd/catatusaha/internal/validate"
)

func validParams() production.CreateParams {
	return production.CreateParams{
		Date:        time.Date(2025, 7, 24, 0, 0, 0, 0, time.UTC),
		ProductName: "Roti Tawar",
		Quantity:    10,
		Materials: []production.MaterialParams{
			{MaterialName: "Tepung", Quantity: decimal.NewFromInt(2), Unit: "kg"},
			{MaterialName: "Ragi", Quantity: decimal.RequireFromString("0.25"), Unit: "kg"},
		},
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *production.CreateParams)
		setupMock func(m *production.MockRepository)
		wantField string
		wantErr   bool
	}{
		{
			name:   "Success",
			mutate: func(p *production.CreateParams) {},
			setupMock: func(m *production.MockRepository) {
				m.EXPECT().
					CreateBatch(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *production.Batch) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:   "NoMaterials",
			mutate: func(p *production.CreateParams) { p.Materials = nil },
			setupMock: func(m *production.MockRepository) {
				m.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "ZeroQuantity",
			mutate:    func(p *production.CreateParams) { p.Quantity = 0 },
			wantField: "quantity",
			wantErr:   true,
		},
		{
			name:      "MissingProductName",
			mutate:    func(p *production.CreateParams) { p.ProductName = "" },
			wantField: "productName",
			wantErr:   true,
		},
		{
			name:      "InvalidMaterialQuantity",
			mutate:    func(p *production.CreateParams) { p.Materials[1].Quantity = decimal.NewFromInt(-1) },
			wantField: "materials[1].quantity",
			wantErr:   true,
		},
		{
			name:      "MissingMaterialUnit",
			mutate:    func(p *production.CreateParams) { p.Materials[0].Unit = "" },
			wantField: "materials[0].unit",
			wantErr:   true,
		},
		{
			name:   "RepoError",
			mutate: func(p *production.CreateParams) {},
			setupMock: func(m *production.MockRepository) {
				m.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// Any repository call not set up by the case fails the test, which
			// proves invalid batches never reach storage.
			repo := production.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			params := validParams()
			tt.mutate(&params)

			got, err := production.NewService(repo).Create(context.Background(), "u1", params)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				if tt.wantField != "" {
					var vErr *validate.Error
					require.True(t, errors.As(err, &vErr))
					assert.Equal(t, tt.wantField, vErr.Field)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserKey)
			assert.Len(t, got.Materials, len(params.Materials))
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := production.NewMockRepository(ctrl)

	repo.EXPECT().
		ListBatches(gomock.Any(), "u1").
		Return([]*production.Batch{{ID: uuid.New()}}, nil)

	got, err := production.NewService(repo).List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
