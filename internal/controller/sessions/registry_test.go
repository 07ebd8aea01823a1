package sessions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Freeeeeet/sampark_kvk/internal/auth/local"
	"github.com/Freeeeeet/sampark_kvk/internal/controller/state"
	"github.com/Freeeeeet/sampark_kvk/internal/dashboard"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository"
	"github.com/Freeeeeet/sampark_kvk/internal/service"
	"github.com/Freeeeeet/sampark_kvk/internal/session"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/memory"
)

type recorder struct {
	mu     sync.Mutex
	events []session.Status
}

func (r *recorder) notify(_ context.Context, _ int64, _ session.State, data state.UserData) {
	r.mu.Lock()
	r.events = append(r.events, data.Session.Status)
	r.mu.Unlock()
}

func (r *recorder) last() session.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return session.StatusLoading
	}
	return r.events[len(r.events)-1]
}

type fixture struct {
	registry *Registry
	states   *state.Manager
	accounts *service.AccountService
	events   *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	provider := local.NewProvider(store, zap.NewNop(), local.WithCost(bcrypt.MinCost))
	gateway := repository.NewGateway(store, zap.NewNop())
	states := state.NewManager()

	registry := NewRegistry(context.Background(), provider, gateway, states,
		dashboard.Deps{Records: gateway, Writer: gateway}, zap.NewNop())
	events := &recorder{}
	registry.SetNotifier(events.notify)
	t.Cleanup(registry.CloseAll)

	return &fixture{
		registry: registry,
		states:   states,
		accounts: service.NewAccountService(provider, gateway, zap.NewNop()),
		events:   events,
	}
}

func TestOpenResolvesToSignedOut(t *testing.T) {
	f := newFixture(t)

	chat, err := f.registry.Open(1)
	require.NoError(t, err)
	assert.Nil(t, chat.Dashboard())

	require.Eventually(t, func() bool {
		return f.events.last() == session.StatusSignedOut
	}, time.Second, 10*time.Millisecond)

	again, err := f.registry.Open(1)
	require.NoError(t, err)
	assert.Same(t, chat, again)
	assert.Equal(t, 1, f.registry.Len())
}

func TestSignUpSelectsDashboardByRole(t *testing.T) {
	tests := []struct {
		role      string
		wantRole  model.Role
		wantClass string
	}{
		{role: "admin", wantRole: model.RoleAdmin},
		{role: "teacher", wantRole: model.RoleTeacher, wantClass: model.DefaultClass},
		{role: "parent", wantRole: model.RoleParent},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			f := newFixture(t)
			chat, err := f.registry.Open(7)
			require.NoError(t, err)

			_, err = f.accounts.SignUp(context.Background(), chat.Client, service.SignUpInput{
				Email:    tt.role + "@kvk.in",
				Password: "secret1",
				Role:     tt.role,
			})
			require.NoError(t, err)

			require.Eventually(t, func() bool {
				d := chat.Dashboard()
				return d != nil && f.events.last() == session.StatusSignedIn
			}, time.Second, 10*time.Millisecond)

			assert.Equal(t, tt.wantRole, chat.Dashboard().Role())
			data := f.states.Get(7)
			assert.Equal(t, tt.wantClass, data.SelectedClass)
		})
	}
}

func TestSignOutDropsDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	chat, err := f.registry.Open(3)
	require.NoError(t, err)
	_, err = f.accounts.SignUp(ctx, chat.Client, service.SignUpInput{Email: "t@kvk.in", Password: "secret1", Role: "teacher"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return chat.Dashboard() != nil }, time.Second, 10*time.Millisecond)

	chat.Resolver.SignOut(ctx)

	require.Eventually(t, func() bool {
		return chat.Dashboard() == nil && f.events.last() == session.StatusSignedOut
	}, time.Second, 10*time.Millisecond)
	assert.False(t, f.states.Get(3).Session.IsSignedIn())
}

func TestCloseIdle(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2024, 10, 21, 9, 0, 0, 0, time.UTC)
	f.registry.now = func() time.Time { return now }

	_, err := f.registry.Open(1)
	require.NoError(t, err)
	_, err = f.registry.Open(2)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, ok := f.registry.Get(2)
	require.True(t, ok)

	closed := f.registry.CloseIdle(10 * time.Minute)
	assert.Equal(t, 1, closed)

	_, ok = f.registry.Get(1)
	assert.False(t, ok)
	_, ok = f.registry.Get(2)
	assert.True(t, ok)
}

func TestCloseForgetsState(t *testing.T) {
	f := newFixture(t)

	_, err := f.registry.Open(5)
	require.NoError(t, err)
	f.states.Dispatch(5, state.SelectClass{Class: "X-B"})

	f.registry.Close(5)

	_, ok := f.registry.Get(5)
	assert.False(t, ok)
	assert.Equal(t, "", f.states.Get(5).SelectedClass)

	// повторное закрытие ничего не делает
	f.registry.Close(5)
}
