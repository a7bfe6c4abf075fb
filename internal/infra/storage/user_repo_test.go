package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/memstore"
)

func TestUserUpsertCreateAndRefresh(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewUserRepo(memstore.New())

	require.NoError(t, repo.Upsert(ctx, "1", "@ana", "Ana"))
	require.NoError(t, repo.SetNickname(ctx, "1", "Zorro"))

	// el segundo contacto refresca handle y nombre pero no toca el nick
	require.NoError(t, repo.Upsert(ctx, "1", "@ana_new", "Ana B"))

	u, err := repo.Brief(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "@ana_new", u.Username)
	assert.Equal(t, "Ana B", u.Name)
	assert.Equal(t, "Zorro", u.GameNick)
	assert.Equal(t, 0, u.Score)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestSetNicknameCreatesMissingUser(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewUserRepo(memstore.New())

	require.NoError(t, repo.SetNickname(ctx, "9", " Lobo "))
	u, err := repo.Brief(ctx, "9")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Lobo", u.GameNick)
}

func TestSetNicknameMissingColumnIsSchemaError(t *testing.T) {
	ctx := context.Background()
	st := memstore.NewEmpty()
	st.CreateTable(storage.TableUsers, []string{storage.ColTGID, storage.ColUsername, storage.ColScore})
	repo := storage.NewUserRepo(st)

	require.NoError(t, repo.Upsert(ctx, "1", "@ana", "Ana"))

	err := repo.SetNickname(ctx, "1", "Zorro")
	var schemaErr *storage.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, storage.ColGameNick, schemaErr.Column)
}

func TestIncrementScore(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewUserRepo(memstore.New())

	// usuario ausente: no-op, no error
	require.NoError(t, repo.IncrementScore(ctx, "404", 1))
	u, err := repo.Brief(ctx, "404")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, repo.Upsert(ctx, "1", "@ana", ""))
	require.NoError(t, repo.IncrementScore(ctx, "1", 1))
	require.NoError(t, repo.IncrementScore(ctx, "1", 2))

	u, err = repo.Brief(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, u.Score)
}

func TestIncrementScoreMissingColumnIsSchemaError(t *testing.T) {
	ctx := context.Background()
	st := memstore.NewEmpty()
	st.CreateTable(storage.TableUsers, []string{storage.ColTGID, storage.ColUsername})
	repo := storage.NewUserRepo(st)
	require.NoError(t, st.Append(ctx, storage.TableUsers, map[string]string{storage.ColTGID: "1"}))

	err := repo.IncrementScore(ctx, "1", 1)
	var schemaErr *storage.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, storage.ColScore, schemaErr.Column)
}

func TestDisplayNameFallsBackToRawID(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewUserRepo(memstore.New())

	name, err := repo.DisplayName(ctx, "777")
	require.NoError(t, err)
	assert.Equal(t, "777", name)

	require.NoError(t, repo.Upsert(ctx, "1", "@ana", "Ana"))
	name, err = repo.DisplayName(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "@ana", name)

	require.NoError(t, repo.SetNickname(ctx, "1", "Zorro"))
	name, err = repo.DisplayName(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Zorro", name)
}
