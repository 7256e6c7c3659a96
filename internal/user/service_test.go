package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vendortrack/internal/user"
)

func TestService_SignIn(t *testing.T) {
	type testCase struct {
		name      string
		input     string
		setupMock func(m *user.MockRepository)
		wantName  string
		wantErr   error
	}

	tests := []testCase{
		{
			name:  "TrimsName",
			input: "  Rosa ",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantName: "Rosa",
		},
		{
			name:    "BlankName",
			input:   "   ",
			wantErr: user.ErrInvalidName,
		},
		{
			name:  "SaveFailureStillSignsIn",
			input: "Rosa",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().SaveProfile(gomock.Any(), gomock.Any()).Return(errors.New("read-only"))
			},
			wantName: "Rosa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := user.NewMockRepository(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)

			p, err := svc.SignIn(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				_, err := svc.Current()
				assert.ErrorIs(t, err, user.ErrNoProfile)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name)
			assert.False(t, p.CreatedAt.IsZero())

			current, err := svc.Current()
			require.NoError(t, err)
			assert.Equal(t, p, current)
		})
	}
}

func TestService_Load(t *testing.T) {
	t.Run("Saved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().LoadProfile(gomock.Any()).Return(&user.Profile{Name: "Rosa"}, nil)

		svc := user.NewService(repo)
		svc.Load(context.Background())

		p, err := svc.Current()
		require.NoError(t, err)
		assert.Equal(t, "Rosa", p.Name)
	})

	t.Run("Failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().LoadProfile(gomock.Any()).Return(nil, errors.New("boom"))

		svc := user.NewService(repo)
		svc.Load(context.Background())

		_, err := svc.Current()
		assert.ErrorIs(t, err, user.ErrNoProfile)
	})
}
