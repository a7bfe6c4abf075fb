package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ancr33z/TGRRCOOP/internal/domain"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/memstore"
)

func TestResponseUpsertKeepsSingleRowPerPair(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	repo := storage.NewResponseRepo(st)

	require.NoError(t, repo.Upsert(ctx, "R1", "2", domain.ResponsePending))
	require.NoError(t, repo.Upsert(ctx, "R1", "2", domain.ResponsePending))

	rows, err := st.Scan(ctx, storage.TableResponses, func(storage.Row) bool { return true })
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	resp, err := repo.Get(ctx, "R1", "2")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, domain.ResponsePending, resp.Status)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestResponseGetAbsent(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewResponseRepo(memstore.New())

	resp, err := repo.Get(ctx, "R1", "2")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestListPendingResponders(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewResponseRepo(memstore.New())
	require.NoError(t, repo.Upsert(ctx, "R1", "2", domain.ResponsePending))
	require.NoError(t, repo.Upsert(ctx, "R1", "3", domain.ResponseRejected))
	require.NoError(t, repo.Upsert(ctx, "R2", "4", domain.ResponsePending))

	pending, err := repo.ListPendingResponders(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, pending)
}

func TestRejectOthersReturnsOnlyFreshTransitions(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewResponseRepo(memstore.New())
	require.NoError(t, repo.Upsert(ctx, "R1", "2", domain.ResponsePending))
	require.NoError(t, repo.Upsert(ctx, "R1", "3", domain.ResponsePending))
	require.NoError(t, repo.Upsert(ctx, "R1", "4", domain.ResponseRejected))

	rejected, err := repo.RejectOthers(ctx, "R1", "2")
	require.NoError(t, err)
	// el 4 ya estaba REJECTED: no vuelve a reportarse
	assert.Equal(t, []string{"3"}, rejected)

	kept, err := repo.Get(ctx, "R1", "2")
	require.NoError(t, err)
	assert.Equal(t, domain.ResponsePending, kept.Status)

	rejected, err = repo.RejectAllPending(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, rejected)
}
