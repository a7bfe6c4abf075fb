package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage/memstore"
)

func TestAppendScanOrderAndIndex(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, st.Append(ctx, storage.TableUsers, map[string]string{storage.ColTGID: id}))
	}

	rows, err := st.Scan(ctx, storage.TableUsers, func(storage.Row) bool { return true })
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, id := range []string{"a", "b", "c"} {
		assert.Equal(t, i+1, rows[i].Index)
		assert.Equal(t, id, rows[i].Get(storage.ColTGID))
	}
}

func TestFindFirstMatchAndSnapshot(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	require.NoError(t, st.Append(ctx, storage.TableUsers, map[string]string{storage.ColTGID: "1", storage.ColScore: "5"}))

	row, err := st.Find(ctx, storage.TableUsers, storage.ColTGID, "1")
	require.NoError(t, err)
	require.NotNil(t, row)

	// la fila devuelta es una foto: un updateCell posterior no la muta
	require.NoError(t, st.UpdateCell(ctx, storage.TableUsers, row.Index, storage.ColScore, "6"))
	assert.Equal(t, "5", row.Get(storage.ColScore))

	fresh, err := st.Find(ctx, storage.TableUsers, storage.ColTGID, "1")
	require.NoError(t, err)
	assert.Equal(t, "6", fresh.Get(storage.ColScore))

	missing, err := st.Find(ctx, storage.TableUsers, storage.ColTGID, "404")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUnknownColumnIsSchemaError(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	var schemaErr *storage.SchemaError
	_, err := st.Find(ctx, storage.TableUsers, "no_such_col", "x")
	require.ErrorAs(t, err, &schemaErr)

	require.NoError(t, st.Append(ctx, storage.TableUsers, map[string]string{storage.ColTGID: "1"}))
	err = st.UpdateCell(ctx, storage.TableUsers, 1, "no_such_col", "x")
	require.ErrorAs(t, err, &schemaErr)
}

func TestUnknownTableAndRowAreStoreErrors(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()

	_, err := st.Find(ctx, "NoSuchTable", storage.ColTGID, "1")
	var storeErr *storage.StoreError
	require.ErrorAs(t, err, &storeErr)

	err = st.UpdateCell(ctx, storage.TableUsers, 5, storage.ColTGID, "x")
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
