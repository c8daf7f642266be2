package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	svc, err := NewLocalStorageService(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, "doc.pdf", strings.NewReader("%PDF-1.4 content")))

	exists, size, err := svc.FileExists(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, int64(len("%PDF-1.4 content")), size)

	rc, err := svc.ReadFile(ctx, "doc.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4 content", string(data))

	require.NoError(t, svc.DeleteFile(ctx, "doc.pdf"))
	exists, _, err = svc.FileExists(ctx, "doc.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteMissingFileIsNotAnError(t *testing.T) {
	svc, err := NewLocalStorageService(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, svc.DeleteFile(context.Background(), "never-existed.pdf"))
}

func TestResolveRejectsTraversal(t *testing.T) {
	svc, err := NewLocalStorageService(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../outside.pdf", "a/../../b.pdf", "/etc/passwd", "."} {
		assert.Error(t, svc.SaveFile(ctx, key, strings.NewReader("x")), "key %q", key)
	}
}
