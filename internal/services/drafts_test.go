package services

import (
	"testing"

	"github.com/Tomas-vilte/MateReview/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftService(t *testing.T) {
	t.Run("get returns empty string when there is no draft", func(t *testing.T) {
		drafts := NewDraftService(storage.NewMemoryStore())

		text, err := drafts.Get(CommentDraftKey("pr-1"))

		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("set and get round trip", func(t *testing.T) {
		drafts := NewDraftService(storage.NewMemoryStore())

		require.NoError(t, drafts.Set(CommentDraftKey("pr-1"), "esto necesita un test"))
		text, err := drafts.Get(CommentDraftKey("pr-1"))

		require.NoError(t, err)
		assert.Equal(t, "esto necesita un test", text)
	})

	t.Run("comment and reply drafts are independent", func(t *testing.T) {
		drafts := NewDraftService(storage.NewMemoryStore())

		require.NoError(t, drafts.Set(CommentDraftKey("pr-1"), "comentario general"))
		require.NoError(t, drafts.Set(ReplyDraftKey("pr-1", "123"), "respuesta al hilo"))

		comment, err := drafts.Get(CommentDraftKey("pr-1"))
		require.NoError(t, err)
		reply, err := drafts.Get(ReplyDraftKey("pr-1", "123"))
		require.NoError(t, err)

		assert.Equal(t, "comentario general", comment)
		assert.Equal(t, "respuesta al hilo", reply)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		drafts := NewDraftService(storage.NewMemoryStore())
		require.NoError(t, drafts.Set(CommentDraftKey("pr-1"), "algo"))

		require.NoError(t, drafts.Clear(CommentDraftKey("pr-1")))
		require.NoError(t, drafts.Clear(CommentDraftKey("pr-1")))

		text, err := drafts.Get(CommentDraftKey("pr-1"))
		require.NoError(t, err)
		assert.Empty(t, text)
	})
}
