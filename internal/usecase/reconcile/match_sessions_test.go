package reconcile_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/infra/memstore"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/models"
	"github.com/BruksfildServices01/dogtrainer-admin/internal/usecase/reconcile"
)

func strPtr(s string) *string { return &s }

func seed() (*memstore.Store, models.Client) {
	store := memstore.New()
	anna := store.AddClient(models.Client{
		OwnerFirstName: "Anna", OwnerLastName: "Smith",
		ContactEmail: strPtr("anna@example.com"), DogName: "Rex",
	})
	store.AddSession(models.Session{ID: 101, Email: ""})
	store.AddSession(models.Session{ID: 102, Email: "stranger@example.com"})
	store.AddSession(models.Session{ID: 103, Email: "ANNA@example.com"})
	return store, anna
}

func TestMatchSessions_DryRun(t *testing.T) {
	store, anna := seed()
	rec := &memstore.Recorder{}
	uc := reconcile.NewMatchSessions(store, store, rec)

	sum, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, reconcile.ModePreview, sum.Mode)
	assert.Equal(t, 3, sum.TotalSessions)
	assert.Equal(t, 1, sum.TotalClients)
	assert.Equal(t, 1, sum.MatchedCount)
	assert.Equal(t, 2, sum.UnmatchedCount)
	assert.Nil(t, sum.UpdateResults)

	require.Len(t, sum.Matched, 1)
	assert.Equal(t, anna.ID, sum.Matched[0].ClientID)
	require.Len(t, sum.Unmatched, 2)
	assert.NotEqual(t, sum.Unmatched[0].Reason, sum.Unmatched[1].Reason)

	assert.Zero(t, store.Links, "dry run writes nothing")
	assert.Empty(t, rec.Events())
}

func TestMatchSessions_AppliedThenIdempotent(t *testing.T) {
	store, anna := seed()
	rec := &memstore.Recorder{}
	uc := reconcile.NewMatchSessions(store, store, rec)

	sum, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: false})
	require.NoError(t, err)

	assert.Equal(t, reconcile.ModeApplied, sum.Mode)
	require.NotNil(t, sum.UpdateResults)
	assert.Equal(t, 1, sum.UpdateResults.Success)
	assert.Equal(t, 0, sum.UpdateResults.Errors)

	var linked models.Session
	for _, s := range store.Sessions() {
		if s.ID == 103 {
			linked = s
		}
	}
	require.NotNil(t, linked.ClientID)
	assert.Equal(t, anna.ID, *linked.ClientID)
	assert.Equal(t, "Anna Smith", linked.ClientName)
	assert.Equal(t, "Rex", linked.DogName)
	assert.Equal(t, []string{"sessions_reconciled"}, rec.Actions())

	again, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: false})
	require.NoError(t, err)
	assert.Equal(t, 0, again.NeedsUpdateCount)
	assert.Equal(t, 0, again.UpdateResults.Success)
	assert.Equal(t, 1, store.Links)
}

func TestMatchSessions_RowErrorsAreCounted(t *testing.T) {
	store := memstore.New()
	store.AddClient(models.Client{OwnerFirstName: "A", OwnerLastName: "B", ContactEmail: strPtr("a@x.com")})
	for id := uint(1); id <= 3; id++ {
		store.AddSession(models.Session{ID: 200 + id, Email: "a@x.com"})
	}
	store.LinkErr[202] = errors.New("deadlock detected")

	uc := reconcile.NewMatchSessions(store, store, &memstore.Recorder{})

	sum, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: false})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.UpdateResults.Success)
	assert.Equal(t, 1, sum.UpdateResults.Errors)
}

func TestMatchSessions_ReadErrorAborts(t *testing.T) {
	store, _ := seed()
	store.ReadErr = errors.New("connection reset")

	uc := reconcile.NewMatchSessions(store, store, &memstore.Recorder{})

	_, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load clients")
}

func TestMatchSessions_PreviewIsCapped(t *testing.T) {
	store := memstore.New()
	store.AddClient(models.Client{OwnerFirstName: "A", OwnerLastName: "B", ContactEmail: strPtr("a@x.com")})
	for i := 0; i < 12; i++ {
		store.AddSession(models.Session{ID: uint(300 + i), Email: "a@x.com"})
		store.AddSession(models.Session{ID: uint(400 + i), Email: fmt.Sprintf("n%d@x.com", i)})
	}

	uc := reconcile.NewMatchSessions(store, store, &memstore.Recorder{})

	sum, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 12, sum.MatchedCount)
	assert.Len(t, sum.Matched, reconcile.PreviewLimit)
	assert.True(t, sum.HasMoreMatched)
	assert.Len(t, sum.Unmatched, reconcile.PreviewLimit)
	assert.True(t, sum.HasMoreUnmatched)
}

func TestMatchSessions_OnlyUnlinked(t *testing.T) {
	store, anna := seed()
	id := anna.ID
	store.AddSession(models.Session{ID: 104, Email: "anna@example.com", ClientID: &id, ClientName: "Anna Smith", DogName: "Rex"})

	uc := reconcile.NewMatchSessions(store, store, &memstore.Recorder{})

	sum, err := uc.Execute(context.Background(), reconcile.MatchSessionsInput{DryRun: true, OnlyUnlinked: true})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalSessions)
}
