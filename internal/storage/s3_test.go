package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	putInput  *s3.PutObjectInput
	body      string
	putErr    error
	presigned *s3.GetObjectInput
	expires   time.Duration
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.putErr
}

func (f *fakeS3) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.presigned = in
	var o s3.PresignOptions
	for _, fn := range optFns {
		fn(&o)
	}
	f.expires = o.Expires
	return &v4.PresignedHTTPRequest{URL: "https://s3.local/" + *in.Key}, nil
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, 5, 1, 23, 30, 0, 0, time.FixedZone("x", -3*3600))
	assert.Equal(t, "raw-responses/workout/2024-05-02/abc.txt", ObjectKey("workout", at, "abc"))
}

func TestS3Archive_Put(t *testing.T) {
	fake := &fakeS3{}
	a := newS3Archive(fake, fake, "bucket")
	a.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	a.newID = func() string { return "id-1" }

	key, err := a.Put(context.Background(), "workout", "not json at all")
	require.NoError(t, err)
	assert.Equal(t, "raw-responses/workout/2024-05-01/id-1.txt", key)
	assert.Equal(t, "bucket", *fake.putInput.Bucket)
	assert.Equal(t, "not json at all", fake.body)

	fake.putErr = errors.New("denied")
	_, err = a.Put(context.Background(), "workout", "x")
	assert.ErrorContains(t, err, "denied")
}

func TestS3Archive_PresignGet(t *testing.T) {
	fake := &fakeS3{}
	a := newS3Archive(fake, fake, "bucket")

	url, err := a.PresignGet(context.Background(), "raw-responses/k.txt", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/raw-responses/k.txt", url)
	assert.Equal(t, DefaultPresignedURLExpiry, fake.expires)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "http://x", endpointURL("http://x", true))
}
