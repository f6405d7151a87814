package export

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")
	w, err := OpenSQLite(path)
	require.NoError(t, err)
	defer w.Close()

	ctx := context.Background()
	conv := internal.CreateTestConversation("c1")
	require.NoError(t, w.Write(ctx, conv))
	// rewriting replaces rows
	require.NoError(t, w.Write(ctx, conv))

	var count int
	require.NoError(t, w.DB().QueryRow("SELECT COUNT(*) FROM conversations").Scan(&count))
	assert.Equal(t, 1, count)
	require.NoError(t, w.DB().QueryRow("SELECT COUNT(*) FROM messages WHERE conversation_id = ?", "c1").Scan(&count))
	assert.Equal(t, 2, count)

	var src, pointer string
	var resolved bool
	require.NoError(t, w.DB().QueryRow("SELECT src, pointer, resolved FROM media").Scan(&src, &pointer, &resolved))
	assert.Equal(t, "user-abc/file-img1.png", src)
	assert.Equal(t, "file-service://file-img1", pointer)
	assert.True(t, resolved)

	var model string
	require.NoError(t, w.DB().QueryRow("SELECT model_slug FROM messages WHERE role = 'assistant'").Scan(&model))
	assert.Equal(t, "gpt-5", model)
}

func TestOpenSQLite_BadPath(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	var ee *internal.ExportError
	assert.ErrorAs(t, err, &ee)
}
