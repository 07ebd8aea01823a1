package base

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
	"github.com/Freeeeeet/sampark_kvk/internal/storage/memory"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (i *item) SetID(id string) { i.ID = id }

func TestResult_Statuses(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		res       Result[int]
		status    Status
		wantEmpty bool
		wantErr   error
	}{
		{name: "ok", res: OK([]int{1, 2}), status: StatusOK},
		{name: "ok with no items is empty", res: OK[int](nil), status: StatusEmpty, wantEmpty: true},
		{name: "zero value is empty", res: Result[int]{}, status: StatusEmpty, wantEmpty: true},
		{name: "failed", res: Failed[int](boom), status: StatusFailed, wantEmpty: true, wantErr: boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.res.Status())
			assert.Equal(t, tt.wantEmpty, tt.res.IsEmpty())
			assert.Equal(t, tt.status == StatusFailed, tt.res.Failed())
			assert.Equal(t, tt.wantErr, tt.res.Err())
		})
	}
}

func TestResult_FirstAndAll(t *testing.T) {
	res := OK([]string{"a", "b", "c"})

	first, ok := res.First()
	assert.True(t, ok)
	assert.Equal(t, "a", first)
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(res.All()))
	assert.Equal(t, 3, res.Len())

	_, ok = Empty[string]().First()
	assert.False(t, ok)
}

type failingStore struct {
	storage.Store
	err error
}

func (f failingStore) Get(context.Context, string, string) (*storage.Document, error) {
	return nil, f.err
}

func (f failingStore) Query(context.Context, string, ...storage.Filter) ([]storage.Document, error) {
	return nil, f.err
}

func TestList_SkipsMalformedAndSetsID(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, "things", "a", []byte(`{"id":"other","name":"A"}`)))
	require.NoError(t, store.Upsert(ctx, "things", "b", []byte(`{"name":42}`)))
	require.NoError(t, store.Upsert(ctx, "things", "c", []byte(`{"name":"C"}`)))

	repo := NewRepository(store, zap.NewNop())
	res := List[item](ctx, repo, "things")

	require.Equal(t, StatusOK, res.Status())
	assert.Equal(t, []item{{ID: "a", Name: "A"}, {ID: "c", Name: "C"}}, res.Items())
}

func TestFind(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, "things", "a", []byte(`{"name":"A"}`)))
	repo := NewRepository(store, zap.NewNop())

	res := Find[item](ctx, repo, "things", "a")
	got, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, item{ID: "a", Name: "A"}, got)

	res = Find[item](ctx, repo, "things", "missing")
	assert.Equal(t, StatusEmpty, res.Status())
	assert.NoError(t, res.Err())
}

func TestReadFailuresBecomeFailed(t *testing.T) {
	boom := errors.New("connection refused")
	repo := NewRepository(failingStore{err: boom}, zap.NewNop())
	ctx := context.Background()

	list := List[item](ctx, repo, "things")
	assert.True(t, list.Failed())
	assert.ErrorIs(t, list.Err(), boom)
	assert.Empty(t, list.Items())

	one := Find[item](ctx, repo, "things", "a")
	assert.True(t, one.Failed())
	assert.ErrorIs(t, one.Err(), boom)
}
