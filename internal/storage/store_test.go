package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	doc := []byte(`{"class":"X-A","attendance":92,"name":"Aarav Patel"}`)

	tests := []struct {
		name    string
		filters []Filter
		want    bool
	}{
		{name: "no filters", want: true},
		{name: "equal", filters: []Filter{Eq("class", "X-A")}, want: true},
		{name: "different", filters: []Filter{Eq("class", "X-B")}},
		{name: "missing field", filters: []Filter{Eq("section", "A")}},
		{name: "non string field", filters: []Filter{Eq("attendance", "92")}},
		{name: "all must match", filters: []Filter{Eq("class", "X-A"), Eq("name", "Diya Sharma")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Match(doc, tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchInvalidJSON(t *testing.T) {
	_, err := Match([]byte("not json"), []Filter{Eq("class", "X-A")})
	assert.Error(t, err)
}
