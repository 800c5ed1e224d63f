package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/verdex/internal/models"
)

func newTestStore(t *testing.T) *ReportStore {
	t.Helper()
	store, err := NewReportStore(t.TempDir(), nil)
	require.NoError(t, err)
	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte("%PDF-1.4 test")
	require.NoError(t, store.Save(ctx, "Stock_Analysis_RELIANCE_01012025.pdf", data))

	got, err := store.Load(ctx, "Stock_Analysis_RELIANCE_01012025.pdf")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestLoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background(), "nothing.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUnsafeFilenames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	unsafe := []string{
		"",
		"../escape.pdf",
		"a/b.pdf",
		"a\\b.pdf",
		"..",
		"report.txt",
	}

	for _, name := range unsafe {
		t.Run(name, func(t *testing.T) {
			err := store.Save(ctx, name, []byte("x"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))

			_, err = store.Load(ctx, name)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidInput))
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "first.pdf", []byte("1")))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.Save(ctx, "second.pdf", []byte("2")))

	names, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, names, 2)
	assert.Equal(t, "second.pdf", names[0])
	assert.Equal(t, "first.pdf", names[1])
}
