package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/craftledger/internal/config"
)

func exerciseBlobStore(t *testing.T, s BlobStore) {
	t.Helper()
	ctx := context.Background()

	data, ok, err := s.Load(ctx, "craftledger_data_v1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	require.NoError(t, s.Save(ctx, "craftledger_data_v1", []byte(`{"version":1}`)))
	data, ok, err = s.Load(ctx, "craftledger_data_v1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"version":1}`, string(data))

	require.NoError(t, s.Save(ctx, "craftledger_data_v1", []byte(`{"version":1,"orders":[]}`)))
	data, _, err = s.Load(ctx, "craftledger_data_v1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"orders":[]}`, string(data))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseBlobStore(t, s)
	assert.Equal(t, 2, s.Saves())
}

func TestMemoryStoreCopiesBuffers(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("abc")
	require.NoError(t, s.Save(context.Background(), "k", buf))
	buf[0] = 'z'

	data, _, err := s.Load(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
}

func TestLocalStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir)
	require.NoError(t, err)
	exerciseBlobStore(t, s)

	_, err = os.Stat(filepath.Join(dir, "craftledger_data_v1.json"))
	assert.NoError(t, err)
}

func TestNewLocalStoreRequiresDir(t *testing.T) {
	_, err := NewLocalStore(" ")
	assert.Error(t, err)
}

func TestEndpointHost(t *testing.T) {
	assert.Equal(t, "s3.example.com", endpointHost("https://s3.example.com/"))
	assert.Equal(t, "localhost:9000", endpointHost("http://localhost:9000"))
	assert.Equal(t, "minio:9000", endpointHost("minio:9000"))
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.RedisConfig{Host: "cache", Port: "6380", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildRedisOptions(config.RedisConfig{URL: "redis://:secret@redis.local:6379/1"})
	require.NoError(t, err)
	assert.Equal(t, "redis.local:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 1, opts.DB)

	_, err = buildRedisOptions(config.RedisConfig{URL: "ftp://nope"})
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: "memory"}})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, Close(s))

	s, err = Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: "Local", LocalDir: t.TempDir()}})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, s)

	_, err = Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: "floppy"}})
	assert.ErrorContains(t, err, "unknown storage backend")

	_, err = Open(ctx, &config.Config{Storage: config.StorageConfig{Backend: "s3"}})
	assert.Error(t, err)
}
