package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/sampark_kvk/internal/storage"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name      string
		filters   []storage.Filter
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "unfiltered",
			wantQuery: "SELECT id, data FROM documents WHERE collection = $1 ORDER BY seq",
			wantArgs:  []any{"notices"},
		},
		{
			name:      "one filter",
			filters:   []storage.Filter{storage.Eq("class", "X-A")},
			wantQuery: "SELECT id, data FROM documents WHERE collection = $1 AND data->>$2 = $3 ORDER BY seq",
			wantArgs:  []any{"notices", "class", "X-A"},
		},
		{
			name:      "two filters",
			filters:   []storage.Filter{storage.Eq("class", "X-A"), storage.Eq("subject", "Science")},
			wantQuery: "SELECT id, data FROM documents WHERE collection = $1 AND data->>$2 = $3 AND data->>$4 = $5 ORDER BY seq",
			wantArgs:  []any{"notices", "class", "X-A", "subject", "Science"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildQuery("notices", tt.filters)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := Migrations.ReadDir(MigrationsDir)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}
