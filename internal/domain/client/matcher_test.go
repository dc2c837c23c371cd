package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
)

func strPtr(s string) *string { return &s }

var base = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

func fixture() []models.Client {
	return []models.Client{
		{ID: 1, OwnerFirstName: "Anna", OwnerLastName: "Smith", ContactEmail: strPtr("anna@example.com"), ContactNumber: strPtr("07700900001"), DogName: "Rex", CreatedAt: base},
		{ID: 2, OwnerFirstName: "Ben", OwnerLastName: "Jones", ContactEmail: strPtr("ben@example.com"), ContactNumber: strPtr("07700900002"), DogName: "Luna", CreatedAt: base.Add(time.Hour)},
		{ID: 3, OwnerFirstName: "Annabel", OwnerLastName: "Lee", ContactEmail: strPtr("Anna@Example.com"), DogName: "Bo", CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestMatcher_Match(t *testing.T) {
	tests := []struct {
		name      string
		criteria  Criteria
		wantID    uint
		matchedBy string
	}{
		{
			name:      "email is case-insensitive and the newest duplicate wins",
			criteria:  Criteria{Email: "ANNA@example.com"},
			wantID:    3,
			matchedBy: MatchedByEmail,
		},
		{
			name:      "phone used when email misses",
			criteria:  Criteria{Email: "nobody@example.com", Phone: "07700900002"},
			wantID:    2,
			matchedBy: MatchedByPhone,
		},
		{
			name:      "first name substring",
			criteria:  Criteria{Name: "ann"},
			wantID:    3,
			matchedBy: MatchedByName,
		},
		{
			name:      "dog name exact",
			criteria:  Criteria{DogName: "Luna"},
			wantID:    2,
			matchedBy: MatchedByDogName,
		},
		{
			name:      "email wins over a phone that points elsewhere",
			criteria:  Criteria{Email: "ben@example.com", Phone: "07700900001"},
			wantID:    2,
			matchedBy: MatchedByEmail,
		},
	}

	m := NewMatcher(NewMemorySource(fixture()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.MatchDetailed(context.Background(), tt.criteria)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.Client.ID)
			assert.Equal(t, tt.matchedBy, got.MatchedBy)
		})
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	m := NewMatcher(NewMemorySource(fixture()))

	got, err := m.Match(context.Background(), Criteria{Email: "x@example.com", DogName: "rex"})
	require.NoError(t, err)
	assert.Nil(t, got, "dog name is exact, rex != Rex")

	got, err = m.Match(context.Background(), Criteria{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

type failingSource struct{ *MemorySource }

func (failingSource) ClientsByEmail(context.Context, string) ([]models.Client, error) {
	return nil, errors.New("connection refused")
}

func TestMatcher_SourceErrorIsReturned(t *testing.T) {
	m := NewMatcher(failingSource{NewMemorySource(nil)})

	got, err := m.Match(context.Background(), Criteria{Email: "anna@example.com"})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "match client by email")
}

func TestMatcher_EmailOnly(t *testing.T) {
	m := NewMatcher(NewMemorySource(fixture()), EmailOnly()...)

	got, err := m.Match(context.Background(), Criteria{Email: "none@example.com", Phone: "07700900001"})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMostRecent(t *testing.T) {
	assert.Nil(t, MostRecent(nil))

	sameTime := []models.Client{
		{ID: 7, CreatedAt: base},
		{ID: 9, CreatedAt: base},
		{ID: 8, CreatedAt: base},
	}
	assert.Equal(t, uint(9), MostRecent(sameTime).ID)

	assert.Equal(t, uint(3), MostRecent(fixture()).ID)
}

func TestEmailIndex(t *testing.T) {
	clients := append(fixture(), models.Client{ID: 4, OwnerFirstName: "NoMail"})

	idx := EmailIndex(clients)

	require.Len(t, idx, 2)
	assert.Equal(t, uint(3), idx["anna@example.com"].ID)
	assert.Equal(t, uint(2), idx["ben@example.com"].ID)
}
