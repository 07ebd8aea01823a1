package local

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Freeeeeet/sampark_kvk/internal/auth"
	"github.com/Freeeeeet/sampark_kvk/internal/storage"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/memory"
)

func newProvider(t *testing.T) (*Provider, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewProvider(store, zap.NewNop(), WithCost(bcrypt.MinCost)), store
}

func TestSignUp(t *testing.T) {
	p, store := newProvider(t)
	ctx := context.Background()

	id, err := p.SignUp(ctx, " Jane@X.com ", "secret1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, id.UID)
	assert.Equal(t, "jane@x.com", id.Email)

	doc, err := store.Get(ctx, storage.CollectionCredentials, "jane@x.com")
	require.NoError(t, err)
	assert.NotContains(t, string(doc.Data), "secret1")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "duplicate email", email: "JANE@x.com", password: "another", wantErr: auth.ErrEmailInUse},
		{name: "short password", email: "bob@x.com", password: "12345", wantErr: auth.ErrWeakPassword},
		{name: "empty email", email: "  ", password: "secret1", wantErr: auth.ErrInvalidCredential},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.SignUp(ctx, tt.email, tt.password, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignUpDoesNotSignIn(t *testing.T) {
	p, _ := newProvider(t)
	client := p.NewClient()

	_, err := p.SignUp(context.Background(), "jane@x.com", "secret1", "Jane")
	require.NoError(t, err)
	assert.Nil(t, client.Current())
}

func TestClient_SignInNotifiesListeners(t *testing.T) {
	p, _ := newProvider(t)
	ctx := context.Background()
	created, err := p.SignUp(ctx, "jane@x.com", "secret1", "Jane")
	require.NoError(t, err)

	client := p.NewClient()
	var seen []*auth.Identity
	unsubscribe := client.OnAuthStateChanged(func(id *auth.Identity) {
		seen = append(seen, id)
	})

	_, err = client.SignIn(ctx, "jane@x.com", "wrong-pass")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)

	_, err = client.SignIn(ctx, "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, auth.ErrInvalidCredential)

	id, err := client.SignIn(ctx, "JANE@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.UID, id.UID)
	assert.Equal(t, created.UID, client.Current().UID)

	require.NoError(t, client.SignOut(ctx))
	assert.Nil(t, client.Current())

	unsubscribe()
	unsubscribe()
	_, err = client.SignIn(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)

	// начальное состояние, вход, выход; после отписки уведомлений нет
	require.Len(t, seen, 3)
	assert.Nil(t, seen[0])
	assert.Equal(t, "Jane", seen[1].DisplayName)
	assert.Nil(t, seen[2])
}

func TestClients_AreIndependent(t *testing.T) {
	p, _ := newProvider(t)
	ctx := context.Background()
	_, err := p.SignUp(ctx, "jane@x.com", "secret1", "")
	require.NoError(t, err)

	a, b := p.NewClient(), p.NewClient()
	_, err = a.SignIn(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)

	assert.NotNil(t, a.Current())
	assert.Nil(t, b.Current())
}
