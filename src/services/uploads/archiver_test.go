package uploads

import (
	"Backend-Results/src/config"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageKey(t *testing.T) {
	now := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)

	key := StorageKey(now, "../../etc/results.xlsx")
	assert.True(t, strings.HasPrefix(key, "results/2024/03/07/"), key)
	assert.True(t, strings.HasSuffix(key, "-results.xlsx"), key)
	assert.NotContains(t, key, "..")

	assert.NotEqual(t, StorageKey(now, "a.csv"), StorageKey(now, "a.csv"))
}

func TestLocalArchiver(t *testing.T) {
	dir := t.TempDir()
	a := NewLocalArchiver(dir)

	path, err := a.Archive(context.Background(), "term1.csv", []byte("GRNumber,name\n"))
	require.NoError(t, err)

	rel, err := filepath.Rel(dir, path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rel, ".."))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GRNumber,name\n", string(data))
}

func TestLocalArchiverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalArchiver(t.TempDir()).Archive(ctx, "a.csv", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewArchiverDefaultsToLocal(t *testing.T) {
	a, err := NewArchiver(context.Background(), config.UploadConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalArchiver{}, a)
}

func TestNewArchiverS3(t *testing.T) {
	a, err := NewArchiver(context.Background(), config.UploadConfig{
		S3Bucket:    "results",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://127.0.0.1:9000",
		S3AccessKey: "minio",
		S3SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.IsType(t, &S3Archiver{}, a)
}
