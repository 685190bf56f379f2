package customer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tidybooks/tidybooks/internal/auth"
	"github.com/tidybooks/tidybooks/internal/customer"
)

var rc = auth.RequestContext{TenantID: 1, UserID: 1, Role: "owner"}

func TestService_Create(t *testing.T) {
	type args struct {
		params customer.Params
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *customer.MockRepository)
		wantName  string
		wantErr   bool
	}

	created := func(m *customer.MockRepository) {
		m.EXPECT().
			CreateCustomer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *customer.Customer) error {
				c.ID = 7
				return nil
			})
	}

	tests := []testCase{
		{
			name:      "ExplicitName",
			args:      args{params: customer.Params{Name: "Acme Corp", IsBusiness: true}},
			setupMock: created,
			wantName:  "Acme Corp",
		},
		{
			name:      "PersonFallback",
			args:      args{params: customer.Params{FirstName: "Ada", LastName: "Lovelace"}},
			setupMock: created,
			wantName:  "Ada Lovelace",
		},
		{
			name:      "FirstNameOnly",
			args:      args{params: customer.Params{FirstName: "Ada"}},
			setupMock: created,
			wantName:  "Ada",
		},
		{
			name:      "UnknownBusiness",
			args:      args{params: customer.Params{IsBusiness: true}},
			setupMock: created,
			wantName:  "Unknown Business",
		},
		{
			name:      "UnknownCustomer",
			args:      args{params: customer.Params{}},
			setupMock: created,
			wantName:  "Unknown Customer",
		},
		{
			name: "RepoError",
			args: args{params: customer.Params{Name: "Acme Corp"}},
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					CreateCustomer(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := customer.NewService(repo)
			got, err := svc.Create(context.Background(), rc, tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, rc.TenantID, got.TenantID)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	repo.EXPECT().
		GetCustomer(gomock.Any(), rc.TenantID, int64(7)).
		Return(&customer.Customer{ID: 7, TenantID: rc.TenantID, Name: "Old"}, nil)
	repo.EXPECT().
		UpdateCustomer(gomock.Any(), gomock.Any()).
		Return(nil)

	got, err := svc.Update(context.Background(), rc, 7, customer.Params{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	repo.EXPECT().
		GetCustomer(gomock.Any(), rc.TenantID, int64(7)).
		Return(nil, customer.ErrNotFound)

	_, err := svc.Update(context.Background(), rc, 7, customer.Params{Name: "New Name"})
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestService_Delete(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *customer.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					GetCustomer(gomock.Any(), rc.TenantID, int64(7)).
					Return(&customer.Customer{ID: 7, TenantID: rc.TenantID}, nil)
				m.EXPECT().
					DeleteCustomer(gomock.Any(), rc.TenantID, int64(7)).
					Return(nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					GetCustomer(gomock.Any(), rc.TenantID, int64(7)).
					Return(nil, customer.ErrNotFound)
			},
			wantErr: customer.ErrNotFound,
		},
		{
			name: "Referenced",
			setupMock: func(m *customer.MockRepository) {
				m.EXPECT().
					GetCustomer(gomock.Any(), rc.TenantID, int64(7)).
					Return(&customer.Customer{ID: 7, TenantID: rc.TenantID}, nil)
				m.EXPECT().
					DeleteCustomer(gomock.Any(), rc.TenantID, int64(7)).
					Return(customer.ErrInUse)
			},
			wantErr: customer.ErrInUse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := customer.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := customer.NewService(repo)
			err := svc.Delete(context.Background(), rc, 7)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := customer.NewMockRepository(ctrl)
	svc := customer.NewService(repo)

	repo.EXPECT().
		ListCustomers(gomock.Any(), rc.TenantID).
		Return([]*customer.Customer{{ID: 1}, {ID: 2}}, nil)

	got, err := svc.List(context.Background(), rc)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
