package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateImageType(t *testing.T) {
	assert.True(t, ValidateImageType("image/png", "a.bin"))
	assert.True(t, ValidateImageType("image/jpeg; charset=binary", ""))
	assert.True(t, ValidateImageType("", "poster.WEBP"))
	assert.False(t, ValidateImageType("video/mp4", "clip.mp4"))
	assert.False(t, ValidateImageType("application/pdf", "doc.pdf"))
}

func TestEventImageKey(t *testing.T) {
	uid := uuid.MustParse("3f2a9c1e-0000-4000-8000-000000000000")
	key := EventImageKey(uid, ".png")
	assert.Regexp(t, regexp.MustCompile(`^events/3f2a9c1e-0000-4000-8000-000000000000/[0-9a-f-]{36}\.png$`), key)
	assert.NotEqual(t, key, EventImageKey(uid, ".png"))

	assert.Equal(t, ".jpeg", ExtensionFor("image/png", "x.JPEG"))
	assert.Equal(t, ".webp", ExtensionFor("image/webp", "blob"))
	assert.Equal(t, "image/gif", ContentTypeForFilename("a.gif"))
}

func TestPublicObjectURL(t *testing.T) {
	s := &S3{cfg: S3Config{Region: "eu-west-3", ImagesBucket: "events-img"}}
	assert.Equal(t, "https://events-img.s3.eu-west-3.amazonaws.com/events/u/a.png", s.PublicObjectURL("events/u/a.png"))

	s.cfg.Endpoint = "http://localhost:9000/"
	assert.Equal(t, "http://localhost:9000/events-img/events/u/a.png", s.PublicObjectURL("events/u/a.png"))
}

func TestUploadAndDeleteAgainstS3Compatible(t *testing.T) {
	type call struct {
		method, path, acl string
		body              []byte
	}
	var mu sync.Mutex
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, call{r.Method, r.URL.Path, r.Header.Get("X-Amz-Acl"), body})
		mu.Unlock()
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3(context.Background(), S3Config{
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		ImagesBucket:    "images",
		Endpoint:        srv.URL,
	}, zap.NewNop())
	require.NoError(t, err)

	url, err := s.UploadImage(context.Background(), "events/u/a.png", "image/png", bytes.NewReader([]byte("png-bytes")), 9)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/images/events/u/a.png", url)
	require.NoError(t, s.DeleteImage(context.Background(), "events/u/a.png"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	assert.Equal(t, http.MethodPut, calls[0].method)
	assert.Equal(t, "/images/events/u/a.png", calls[0].path)
	assert.Equal(t, "public-read", calls[0].acl)
	assert.Contains(t, string(calls[0].body), "png-bytes")
	assert.Equal(t, http.MethodDelete, calls[1].method)
}
