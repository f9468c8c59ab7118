package objectstore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blankbits/reup/pkg/errors"
)

func TestFSStore_PutGet(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("timestamp,bid_price\n1577977230.0,323.77\n")
	require.NoError(t, store.Put(ctx, "reup/2020-01-02/SPY/time-series.csv", payload))

	got, err := store.Get(ctx, "reup/2020-01-02/SPY/time-series.csv")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFSStore_GzipRoundTrip(t *testing.T) {
	root := t.TempDir()
	store, err := NewFSStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	payload := bytes.Repeat([]byte("323.78,2482\n"), 64)
	require.NoError(t, store.Put(ctx, "reup/2020-01-02/SPY/quotes.csv.gz", payload))

	// On disk the object must actually be gzip, not the raw payload.
	raw, err := os.ReadFile(filepath.Join(root, "reup", "2020-01-02", "SPY", "quotes.csv.gz"))
	require.NoError(t, err)
	reader, err := gzip.NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer reader.Close()

	got, err := store.Get(ctx, "reup/2020-01-02/SPY/quotes.csv.gz")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFSStore_GetMissing(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "reup/2020-01-02/SPY/missing.csv")
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrArtifactNotFound))
}

func TestFSStore_List(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{
		"reup/2020-01-03/SPY/trades.csv.gz",
		"reup/2020-01-02/SPY/quotes.csv.gz",
		"reup/2020-01-02/QQQ/quotes.csv.gz",
		"other/2020-01-02/SPY/quotes.csv.gz",
	} {
		require.NoError(t, store.Put(ctx, key, []byte("x")))
	}

	keys, err := store.List(ctx, "reup/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"reup/2020-01-02/QQQ/quotes.csv.gz",
		"reup/2020-01-02/SPY/quotes.csv.gz",
		"reup/2020-01-03/SPY/trades.csv.gz",
	}, keys)
}

func TestFSStore_Download(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("timestamp,bid_price\n1577977230.0,323.77\n")
	require.NoError(t, store.Put(ctx, "reup/2020-01-02/SPY/time-series.csv.gz", payload))

	localPath, err := store.Download(ctx, "reup/2020-01-02/SPY/time-series.csv.gz")
	require.NoError(t, err)
	defer os.Remove(localPath)

	got, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
