package s3

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/thumbd/internal/domain"
)

func TestTranslate(t *testing.T) {
	notFound := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: http.StatusNotFound}
	assert.ErrorIs(t, translate(notFound, "a/b"), domain.ErrObjectNotFound)

	other := translate(errors.New("connection refused"), "a/b")
	assert.NotErrorIs(t, other, domain.ErrObjectNotFound)
	assert.Contains(t, other.Error(), "a/b")
}

// Runs against a live MinIO when TEST_S3_ENDPOINT is set, e.g.
// TEST_S3_ENDPOINT=localhost:9000 TEST_S3_ACCESS_KEY=minioadmin TEST_S3_SECRET_KEY=minioadmin
func TestStore_RoundTrip(t *testing.T) {
	endpoint := os.Getenv("TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("TEST_S3_ENDPOINT not set")
	}

	client, err := NewClient(Options{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("TEST_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("TEST_S3_SECRET_KEY"),
		Region:    "us-east-1",
	})
	require.NoError(t, err)

	ctx := context.Background()
	store := New(client, "thumbd-test")
	require.NoError(t, store.EnsureBucket(ctx, "us-east-1"))

	key := "thumbnails/" + uuid.NewString() + ".jpg"
	require.NoError(t, store.Put(ctx, key, []byte("jpeg"), "image/jpeg"))

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	signed, err := store.SignedURL(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.Contains(signed, "X-Amz-Signature"))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	assert.NoError(t, store.Delete(ctx, key))
}
