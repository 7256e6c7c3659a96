package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/vendortrack/internal/event"
)

func loadedService(t *testing.T, repo *event.MockRepository, events []event.Event) *event.Service {
	t.Helper()

	repo.EXPECT().LoadEvents(gomock.Any()).Return(events, nil)

	svc := event.NewService(repo, testCatalog())
	svc.Load(context.Background())

	return svc
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		existing  []event.Event
		fields    event.Fields
		setupMock func(m *event.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "CreatesDraft",
			fields: event.Fields{Date: "2024-06-01", Location: "Market"},
			setupMock: func(m *event.MockRepository) {
				m.EXPECT().SaveEvents(gomock.Any(), gomock.Len(1)).Return(nil)
			},
		},
		{
			name:     "AppendsAfterFinalized",
			existing: []event.Event{{ID: "old", Status: event.StatusDone}},
			fields:   event.Fields{Location: "Market"},
			setupMock: func(m *event.MockRepository) {
				m.EXPECT().SaveEvents(gomock.Any(), gomock.Len(2)).Return(nil)
			},
		},
		{
			name:     "RejectsSecondDraft",
			existing: []event.Event{{ID: "open", Status: event.StatusDraft}},
			fields:   event.Fields{Location: "Market"},
			wantErr:  event.ErrDraftExists,
		},
		{
			name:    "RejectsMissingLocation",
			fields:  event.Fields{Date: "2024-06-01"},
			wantErr: event.ErrInvalidEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := event.NewMockRepository(ctrl)
			svc := loadedService(t, repo, tt.existing)

			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			ev, err := svc.Create(context.Background(), tt.fields)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, svc.All(), len(tt.existing))

				return
			}

			require.NoError(t, err)

			active, ok := svc.Active()
			require.True(t, ok)
			assert.Equal(t, ev.ID, active.ID)
			assert.Equal(t, ev.ID, svc.History()[0].ID)
		})
	}
}

func TestService_TapPersistsEveryChange(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := event.NewMockRepository(ctrl)
	svc := loadedService(t, repo, nil)

	var saved [][]event.Event
	repo.EXPECT().SaveEvents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events []event.Event) error {
			saved = append(saved, events)
			return nil
		}).Times(4)

	ev, err := svc.Create(ctx, event.Fields{Location: "Market"})
	require.NoError(t, err)

	_, err = svc.Tap(ctx, ev.ID, "p1")
	require.NoError(t, err)
	_, err = svc.Tap(ctx, ev.ID, "p1")
	require.NoError(t, err)

	got, err := svc.Undo(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, qty(got, "p1"))

	require.Len(t, saved, 4)
	assert.Equal(t, 2, qty(saved[2][0], "p1"))
	assert.Equal(t, 1, qty(saved[3][0], "p1"))
}

func TestService_SavesInMutationOrder(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := event.NewMockRepository(ctrl)
	svc := loadedService(t, repo, nil)

	repo.EXPECT().SaveEvents(gomock.Any(), gomock.Any()).Return(nil)

	ev, err := svc.Create(ctx, event.Fields{Location: "Market"})
	require.NoError(t, err)

	started := make(chan struct{})
	release := make(chan struct{})

	var (
		mu        sync.Mutex
		calls     int
		persisted []event.Event
	)

	repo.EXPECT().SaveEvents(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, events []event.Event) error {
			mu.Lock()
			calls++
			first := calls == 1
			mu.Unlock()

			if first {
				close(started)
				<-release
			}

			mu.Lock()
			persisted = events
			mu.Unlock()

			return nil
		}).Times(2)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Tap(ctx, ev.ID, "p1")
		firstDone <- err
	}()

	<-started

	secondDone := make(chan error, 1)
	go func() {
		_, err := svc.Tap(ctx, ev.ID, "p1")
		secondDone <- err
	}()

	assert.Never(t, func() bool { return len(secondDone) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	close(release)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)

	current, err := svc.Get(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, qty(current, "p1"))

	mu.Lock()
	defer mu.Unlock()

	require.Len(t, persisted, 1)
	assert.Equal(t, 2, qty(persisted[0], "p1"))
}

func TestService_SaveFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := event.NewMockRepository(ctrl)
	svc := loadedService(t, repo, nil)

	repo.EXPECT().SaveEvents(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(2)

	ev, err := svc.Create(ctx, event.Fields{Location: "Market"})
	require.NoError(t, err)

	got, err := svc.Tap(ctx, ev.ID, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, qty(got, "p2"))

	stored, err := svc.Get(ev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, qty(stored, "p2"))
}

func TestService_LoadFailureStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := event.NewMockRepository(ctrl)
	repo.EXPECT().LoadEvents(gomock.Any()).Return(nil, errors.New("corrupt"))

	svc := event.NewService(repo, testCatalog())
	svc.Load(context.Background())

	assert.Empty(t, svc.All())

	_, ok := svc.Active()
	assert.False(t, ok)
}

func TestService_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	svc := loadedService(t, event.NewMockRepository(ctrl), nil)

	_, err := svc.Get("nope")
	assert.ErrorIs(t, err, event.ErrNotFound)

	_, err = svc.Tap(ctx, "nope", "p1")
	assert.ErrorIs(t, err, event.ErrNotFound)

	_, err = svc.Undo(ctx, "nope")
	assert.ErrorIs(t, err, event.ErrNotFound)

	_, err = svc.SetQuantity(ctx, "nope", "p1", 2)
	assert.ErrorIs(t, err, event.ErrNotFound)

	_, err = svc.Finalize(ctx, "nope", event.Reconciliation{})
	assert.ErrorIs(t, err, event.ErrNotFound)
}

func TestService_FinalizeFreezesEvent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := event.NewMockRepository(ctrl)
	svc := loadedService(t, repo, nil)

	repo.EXPECT().SaveEvents(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	ev, err := svc.Create(ctx, event.Fields{Location: "Market"})
	require.NoError(t, err)

	_, err = svc.Tap(ctx, ev.ID, "p1")
	require.NoError(t, err)

	done, err := svc.Finalize(ctx, ev.ID, event.Reconciliation{SquareTotal: "10"})
	require.NoError(t, err)
	assert.Equal(t, event.StatusDone, done.Status)

	_, err = svc.Tap(ctx, ev.ID, "p1")
	assert.ErrorIs(t, err, event.ErrNotDraft)

	_, ok := svc.Active()
	assert.False(t, ok)
}

func TestService_PreviewDoesNotStore(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := event.NewMockRepository(ctrl)
	svc := loadedService(t, repo, nil)

	repo.EXPECT().SaveEvents(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	ev, err := svc.Create(ctx, event.Fields{Location: "Market"})
	require.NoError(t, err)

	_, err = svc.Tap(ctx, ev.ID, "p1")
	require.NoError(t, err)

	preview, err := svc.Preview(ev.ID, event.Reconciliation{CashRevenue: "99"})
	require.NoError(t, err)
	assert.Equal(t, event.StatusDone, preview.Status)
	assert.Equal(t, "99", preview.CashRevenue)

	stored, err := svc.Get(ev.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsDraft())
	assert.Empty(t, stored.CashRevenue)
	assert.NotNil(t, stored.LastAction)
}
