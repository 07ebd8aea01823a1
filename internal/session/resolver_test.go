package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/model"
	"github.com/Freeeeeet/sampark_kvk/internal/repository/base"
)

// fakeClient провайдер, которым тест управляет вручную
type fakeClient struct {
	mu           sync.Mutex
	listener     auth.Listener
	current      *auth.Identity
	signOutErr   error
	unsubscribed int
}

func (f *fakeClient) SignIn(context.Context, string, string) (*auth.Identity, error) {
	return nil, errors.New("not used")
}

func (f *fakeClient) SignOut(context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.push(nil)
	return nil
}

func (f *fakeClient) Current() *auth.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeClient) OnAuthStateChanged(fn auth.Listener) func() {
	f.mu.Lock()
	f.listener = fn
	current := f.current
	f.mu.Unlock()

	fn(current)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribed++
		f.listener = nil
	}
}

func (f *fakeClient) push(id *auth.Identity) {
	f.mu.Lock()
	f.current = id
	l := f.listener
	f.mu.Unlock()
	if l != nil {
		l(id)
	}
}

type profileSource struct {
	profiles map[string]model.UserProfile
	err      error
	gate     chan struct{}
}

func (p *profileSource) FetchProfile(_ context.Context, id string) base.Result[model.UserProfile] {
	if p.gate != nil {
		<-p.gate
	}
	if p.err != nil {
		return base.Failed[model.UserProfile](p.err)
	}
	if prof, ok := p.profiles[id]; ok {
		return base.One(prof)
	}
	return base.Empty[model.UserProfile]()
}

func recv(t *testing.T, ch <-chan State) State {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "state channel closed")
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session state")
		return State{}
	}
}

func assertQuiet(t *testing.T, ch <-chan State) {
	t.Helper()
	select {
	case s, ok := <-ch:
		if ok {
			t.Fatalf("unexpected state %v", s.Status)
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestResolve_LoadingThenSignedOut(t *testing.T) {
	client := &fakeClient{}
	r := NewResolver(client, &profileSource{}, zap.NewNop())
	defer r.Close()

	states, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusLoading, recv(t, states).Status)
	assert.Equal(t, StatusSignedOut, recv(t, states).Status)
	assertQuiet(t, states)
}

func TestResolve_SignedInWithStoredProfile(t *testing.T) {
	stored := model.NewProfile("u1", "Mrs. Verma", "verma@x.com", model.RoleTeacher)
	client := &fakeClient{current: &auth.Identity{UID: "u1", Email: "verma@x.com"}}
	r := NewResolver(client, &profileSource{profiles: map[string]model.UserProfile{"u1": stored}}, zap.NewNop())
	defer r.Close()

	states, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusLoading, recv(t, states).Status)
	s := recv(t, states)
	require.True(t, s.IsSignedIn())
	assert.Equal(t, stored, *s.Profile)
}

func TestResolve_SynthesizesProfile(t *testing.T) {
	tests := []struct {
		name     string
		identity auth.Identity
		source   *profileSource
		wantName string
	}{
		{
			name:     "missing profile, email local part",
			identity: auth.Identity{UID: "u-jane", Email: "jane@x.com"},
			source:   &profileSource{},
			wantName: "jane",
		},
		{
			name:     "lookup failure, display name",
			identity: auth.Identity{UID: "u-ravi", Email: "ravi@x.com", DisplayName: "Ravi K"},
			source:   &profileSource{err: errors.New("unavailable")},
			wantName: "Ravi K",
		},
		{
			name:     "no metadata",
			identity: auth.Identity{UID: "u-anon"},
			source:   &profileSource{},
			wantName: "User",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			r := NewResolver(client, tt.source, zap.NewNop())
			defer r.Close()

			states, err := r.Resolve(context.Background())
			require.NoError(t, err)
			recv(t, states)
			recv(t, states)

			id := tt.identity
			client.push(&id)

			s := recv(t, states)
			require.True(t, s.IsSignedIn())
			assert.Equal(t, tt.identity.UID, s.Profile.ID)
			assert.Equal(t, tt.wantName, s.Profile.Name)
			assert.Equal(t, model.RoleTeacher, s.Profile.Role)
		})
	}
}

func TestResolve_SignedInOnlyAfterLookup(t *testing.T) {
	gate := make(chan struct{})
	client := &fakeClient{current: &auth.Identity{UID: "u1", Email: "a@x.com"}}
	r := NewResolver(client, &profileSource{gate: gate}, zap.NewNop())
	defer r.Close()

	states, err := r.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusLoading, recv(t, states).Status)
	assertQuiet(t, states)

	close(gate)
	assert.Equal(t, StatusSignedIn, recv(t, states).Status)
}

func TestResolve_Twice(t *testing.T) {
	r := NewResolver(&fakeClient{}, &profileSource{}, zap.NewNop())
	defer r.Close()

	_, err := r.Resolve(context.Background())
	require.NoError(t, err)

	_, err = r.Resolve(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyResolving)
}

func TestSignOut_ForcesSignedOutOnProviderFailure(t *testing.T) {
	client := &fakeClient{
		current:    &auth.Identity{UID: "u1", Email: "a@x.com"},
		signOutErr: errors.New("network down"),
	}
	r := NewResolver(client, &profileSource{}, zap.NewNop())
	defer r.Close()

	states, err := r.Resolve(context.Background())
	require.NoError(t, err)
	recv(t, states)
	require.Equal(t, StatusSignedIn, recv(t, states).Status)

	r.SignOut(context.Background())
	assert.Equal(t, StatusSignedOut, recv(t, states).Status)
	assert.Equal(t, StatusSignedOut, r.Current().Status)
}

func TestSignOut_EmitsSingleSignedOut(t *testing.T) {
	client := &fakeClient{current: &auth.Identity{UID: "u1"}}
	r := NewResolver(client, &profileSource{}, zap.NewNop())
	defer r.Close()

	states, err := r.Resolve(context.Background())
	require.NoError(t, err)
	recv(t, states)
	recv(t, states)

	r.SignOut(context.Background())
	assert.Equal(t, StatusSignedOut, recv(t, states).Status)
	assertQuiet(t, states)
}

func TestClose(t *testing.T) {
	client := &fakeClient{}
	r := NewResolver(client, &profileSource{}, zap.NewNop())

	states, err := r.Resolve(context.Background())
	require.NoError(t, err)
	recv(t, states)
	recv(t, states)

	r.Close()
	r.Close()

	client.push(&auth.Identity{UID: "u1"})

	for s := range states {
		t.Fatalf("state after close: %v", s.Status)
	}
	assert.Equal(t, 1, client.unsubscribed)
}

func TestResolve_ContextCancelClosesChannel(t *testing.T) {
	client := &fakeClient{}
	r := NewResolver(client, &profileSource{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	states, err := r.Resolve(ctx)
	require.NoError(t, err)
	recv(t, states)
	recv(t, states)

	cancel()

	select {
	case _, ok := <-states:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
