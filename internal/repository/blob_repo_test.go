package repository

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"extract-store/internal/config"
)

func TestMemoryBlobRepository_PutAndGet(t *testing.T) {
	repo := NewMemoryBlobRepository()
	body := []byte(`{"first_name":"Steve"}`)

	require.NoError(t, repo.Put(context.Background(), body, "bucket", "1986/07/18/abc"))
	body[0] = 'X'

	got, ok := repo.Get("bucket", "1986/07/18/abc")
	require.True(t, ok)
	assert.Equal(t, `{"first_name":"Steve"}`, string(got))
	assert.Equal(t, 1, repo.Len())

	_, ok = repo.Get("other", "1986/07/18/abc")
	assert.False(t, ok)
}

func TestMemoryBlobRepository_WriteOnce(t *testing.T) {
	repo := NewMemoryBlobRepository()
	require.NoError(t, repo.Put(context.Background(), []byte("a"), "bucket", "k"))

	err := repo.Put(context.Background(), []byte("b"), "bucket", "k")
	assert.ErrorIs(t, err, ErrObjectExists)

	got, _ := repo.Get("bucket", "k")
	assert.Equal(t, "a", string(got))
}

func TestMemoryBlobRepository_ConcurrentPuts(t *testing.T) {
	repo := NewMemoryBlobRepository()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a'+i%26)) + string(rune('a'+i/26))
			_ = repo.Put(context.Background(), []byte("x"), "bucket", key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, repo.Len())
}

type mockPgExecer struct {
	lastSQL  string
	lastArgs []any
	tag      pgconn.CommandTag
	err      error
}

func (m *mockPgExecer) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	m.lastSQL = sql
	m.lastArgs = args
	return m.tag, m.err
}

func TestPgBlobRepository_Put(t *testing.T) {
	mock := &mockPgExecer{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := &PgBlobRepository{db: mock}

	err := repo.Put(context.Background(), []byte(`{"zip_code":94806}`), "bucket", "1986/07/18/abc")
	require.NoError(t, err)
	assert.Contains(t, mock.lastSQL, "INSERT INTO record_objects")
	assert.Contains(t, mock.lastSQL, "ON CONFLICT")
	require.Len(t, mock.lastArgs, 5)
	assert.Equal(t, "bucket", mock.lastArgs[0])
	assert.Equal(t, "1986/07/18/abc", mock.lastArgs[1])
	assert.Equal(t, []byte(`{"zip_code":94806}`), mock.lastArgs[2])
	assert.Equal(t, "application/json", mock.lastArgs[3])
	assert.IsType(t, time.Time{}, mock.lastArgs[4])
}

func TestPgBlobRepository_Conflict(t *testing.T) {
	repo := &PgBlobRepository{db: &mockPgExecer{tag: pgconn.NewCommandTag("INSERT 0 0")}}

	err := repo.Put(context.Background(), []byte("x"), "bucket", "k")
	assert.ErrorIs(t, err, ErrObjectExists)
}

func TestPgBlobRepository_ExecError(t *testing.T) {
	repo := &PgBlobRepository{db: &mockPgExecer{err: errors.New("connection refused")}}

	err := repo.Put(context.Background(), []byte("x"), "bucket", "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectExists)
}

type mockRedisSetNX struct {
	lastKey string
	lastVal interface{}
	lastTTL time.Duration
	result  bool
	err     error
}

func (m *mockRedisSetNX) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	m.lastKey = key
	m.lastVal = value
	m.lastTTL = expiration
	cmd := redis.NewBoolCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisBlobRepository_Put(t *testing.T) {
	t.Run("stores under prefixed key", func(t *testing.T) {
		mock := &mockRedisSetNX{result: true}
		repo := &RedisBlobRepository{client: mock, prefix: "blob:"}

		require.NoError(t, repo.Put(context.Background(), []byte("body"), "bucket", "1986/07/18/abc"))
		assert.Equal(t, "blob:bucket/1986/07/18/abc", mock.lastKey)
		assert.Equal(t, []byte("body"), mock.lastVal)
		assert.Equal(t, time.Duration(0), mock.lastTTL)
	})

	t.Run("existing key rejected", func(t *testing.T) {
		repo := &RedisBlobRepository{client: &mockRedisSetNX{result: false}, prefix: "blob:"}
		assert.ErrorIs(t, repo.Put(context.Background(), []byte("body"), "bucket", "k"), ErrObjectExists)
	})

	t.Run("redis error propagates", func(t *testing.T) {
		repo := &RedisBlobRepository{client: &mockRedisSetNX{err: errors.New("redis down")}, prefix: "blob:"}
		err := repo.Put(context.Background(), []byte("body"), "bucket", "k")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis down")
	})
}

type mockS3Client struct {
	lastInput *s3.PutObjectInput
	lastBody  []byte
	err       error
}

func (m *mockS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.lastInput = params
	if params.Body != nil {
		m.lastBody, _ = io.ReadAll(params.Body)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3BlobRepository_Put(t *testing.T) {
	mock := &mockS3Client{}
	repo := &S3BlobRepository{client: mock}

	require.NoError(t, repo.Put(context.Background(), []byte(`{"last_name":"McClellan"}`), "fake-bucket", "1986/07/18/abc"))
	require.NotNil(t, mock.lastInput)
	assert.Equal(t, "fake-bucket", aws.ToString(mock.lastInput.Bucket))
	assert.Equal(t, "1986/07/18/abc", aws.ToString(mock.lastInput.Key))
	assert.Equal(t, "application/json", aws.ToString(mock.lastInput.ContentType))
	assert.Equal(t, "*", aws.ToString(mock.lastInput.IfNoneMatch))
	assert.Equal(t, `{"last_name":"McClellan"}`, string(mock.lastBody))
}

func TestS3BlobRepository_PreconditionFailed(t *testing.T) {
	mock := &mockS3Client{err: &smithy.GenericAPIError{Code: "PreconditionFailed", Message: "At least one of the pre-conditions you specified did not hold"}}
	repo := &S3BlobRepository{client: mock}

	assert.ErrorIs(t, repo.Put(context.Background(), []byte("x"), "b", "k"), ErrObjectExists)
}

func TestS3BlobRepository_OtherError(t *testing.T) {
	mock := &mockS3Client{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}}
	repo := &S3BlobRepository{client: mock}

	err := repo.Put(context.Background(), []byte("x"), "b", "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrObjectExists)
}

func TestOpenBlobRepository_Memory(t *testing.T) {
	cfg := &config.Config{BucketName: "b", StorageBackend: config.BackendMemory}

	repo, closeFn, err := OpenBlobRepository(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &MemoryBlobRepository{}, repo)
}

func TestOpenBlobRepository_UnknownBackend(t *testing.T) {
	cfg := &config.Config{BucketName: "b", StorageBackend: "tape"}

	_, _, err := OpenBlobRepository(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tape")
}
