package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pratblog/internal/models"
)

func ptr(v int64) *int64 {
	return &v
}

func TestBuildCommentTree(t *testing.T) {
	t.Run("Ответы вкладываются под родителя", func(t *testing.T) {
		comments := []models.Comment{
			{ID: 1, Content: "корень"},
			{ID: 2, ParentID: ptr(1), Content: "ответ"},
			{ID: 3, Content: "второй корень"},
		}

		tree := BuildCommentTree(comments)

		require.Len(t, tree, 2)
		assert.Equal(t, int64(1), tree[0].ID)
		require.Len(t, tree[0].Replies, 1)
		assert.Equal(t, int64(2), tree[0].Replies[0].ID)
		assert.Empty(t, tree[1].Replies)
	})

	t.Run("Сирота с несуществующим родителем выпадает", func(t *testing.T) {
		comments := []models.Comment{
			{ID: 1},
			{ID: 2, ParentID: ptr(1)},
			{ID: 3},
			{ID: 4, ParentID: ptr(99)},
		}

		tree := BuildCommentTree(comments)

		require.Len(t, tree, 2)
		assert.Equal(t, int64(1), tree[0].ID)
		assert.Equal(t, int64(3), tree[1].ID)

		// комментарий 4 не появляется нигде
		var total int
		var walk func(nodes []*models.CommentNode)
		walk = func(nodes []*models.CommentNode) {
			for _, n := range nodes {
				total++
				walk(n.Replies)
			}
		}
		walk(tree)
		assert.Equal(t, 3, total)
	})

	t.Run("Глубокая вложенность", func(t *testing.T) {
		comments := []models.Comment{
			{ID: 1},
			{ID: 2, ParentID: ptr(1)},
			{ID: 3, ParentID: ptr(2)},
		}

		tree := BuildCommentTree(comments)

		require.Len(t, tree, 1)
		require.Len(t, tree[0].Replies, 1)
		require.Len(t, tree[0].Replies[0].Replies, 1)
		assert.Equal(t, int64(3), tree[0].Replies[0].Replies[0].ID)
	})

	t.Run("Пустой список дает пустое дерево", func(t *testing.T) {
		tree := BuildCommentTree(nil)

		assert.NotNil(t, tree)
		assert.Empty(t, tree)
	})

	t.Run("Replies всегда пустой срез, не nil", func(t *testing.T) {
		tree := BuildCommentTree([]models.Comment{{ID: 1}})

		require.Len(t, tree, 1)
		assert.NotNil(t, tree[0].Replies)
	})
}
