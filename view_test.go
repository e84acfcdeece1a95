package svdb

import (
	"testing"

	"github.com/hupe1980/svdb/metric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems(t *testing.T) {
	t.Run("RowOrder", func(t *testing.T) {
		col := newTestCollection(t)
		require.NoError(t, col.Insert("c", []float32{1, 0, 0, 0, 0}, map[string]string{"n": "1"}))
		require.NoError(t, col.Insert("a", []float32{0, 1, 0, 0, 0}, map[string]string{"n": "2"}))
		require.NoError(t, col.Insert("b", []float32{0, 0, 1, 0, 0}, map[string]string{"n": "3"}))

		var items []Item
		for item, err := range col.View().Items() {
			require.NoError(t, err)
			items = append(items, item)
		}

		// Insertion order, not key order.
		require.Len(t, items, 3)
		assert.Equal(t, "c", items[0].ID)
		assert.Equal(t, "a", items[1].ID)
		assert.Equal(t, "b", items[2].ID)
		assert.Equal(t, 5, items[0].Dimension)
		assert.Equal(t, map[string]string{"n": "1"}, items[0].Metadata)
	})

	t.Run("AfterDelete", func(t *testing.T) {
		col := newTestCollection(t)
		require.NoError(t, col.Insert("a", []float32{1, 0, 0, 0, 0}, nil))
		require.NoError(t, col.Insert("b", []float32{0, 1, 0, 0, 0}, nil))
		require.NoError(t, col.Insert("c", []float32{0, 0, 1, 0, 0}, nil))

		require.NoError(t, col.Delete("b"))

		var ids []string
		for item, err := range col.View().Items() {
			require.NoError(t, err)
			ids = append(ids, item.ID)
		}
		assert.Equal(t, []string{"a", "c"}, ids)
	})

	t.Run("Restartable", func(t *testing.T) {
		col := newTestCollection(t)
		require.NoError(t, col.Insert("a", []float32{1, 2}, nil))

		view := col.View()
		for range 2 {
			var n int
			for _, err := range view.Items() {
				require.NoError(t, err)
				n++
			}
			assert.Equal(t, 1, n)
		}
	})

	t.Run("DivergedRowYieldsError", func(t *testing.T) {
		col := newTestCollection(t)
		require.NoError(t, col.Insert("a", []float32{1, 2}, nil))
		require.NoError(t, col.Insert("b", []float32{3, 4}, nil))

		// Drop the vector behind the metadata row's back.
		require.NoError(t, col.vectors.Remove("a"))

		var ids []string
		var errs int
		for item, err := range col.View().Items() {
			if err != nil {
				errs++
				continue
			}
			ids = append(ids, item.ID)
		}
		assert.Equal(t, 1, errs)
		assert.Equal(t, []string{"b"}, ids)
	})

	t.Run("EmptyCollection", func(t *testing.T) {
		col := newTestCollection(t)

		for range col.View().Items() {
			t.Fatal("empty collection must yield nothing")
		}
	})
}

func TestTopK(t *testing.T) {
	seed := func(t *testing.T) *Collection {
		t.Helper()
		col := newTestCollection(t)
		require.NoError(t, col.Insert("1", []float32{1, 2, 3, 4, 5}, map[string]string{"source": "api"}))
		require.NoError(t, col.Insert("2", []float32{5, 4, 3, 2, 1}, map[string]string{"source": "ui"}))
		require.NoError(t, col.Insert("3", []float32{9, 8, 7, 6, 5}, map[string]string{"source": "batch"}))
		require.NoError(t, col.Insert("4", []float32{0, 1, 0, 1, 0}, map[string]string{"source": "mobile"}))
		return col
	}

	t.Run("Cosine", func(t *testing.T) {
		col := seed(t)

		matches, err := col.View().TopK([]float32{1, 2, 3, 4, 5}, 3)
		require.NoError(t, err)
		require.Len(t, matches, 3)

		// The identical vector scores ~1 and ranks first.
		assert.Equal(t, "1", matches[0].ID)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-5)
		assert.Equal(t, map[string]string{"source": "api"}, matches[0].Metadata)

		// Scores are descending.
		for i := 1; i < len(matches); i++ {
			assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
		}
	})

	t.Run("Dot", func(t *testing.T) {
		col := seed(t)

		view := col.View(WithMetric(metric.Dot))
		matches, err := view.TopK([]float32{1, 1, 1, 1, 1}, 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		// Highest dot product first.
		assert.Equal(t, "3", matches[0].ID)
		assert.InDelta(t, 35.0, matches[0].Score, 1e-5)
	})

	t.Run("InsufficientEntries", func(t *testing.T) {
		col := newTestCollection(t)
		require.NoError(t, col.Insert("a", []float32{1, 2, 3, 4, 5}, nil))
		require.NoError(t, col.Insert("b", []float32{5, 4, 3, 2, 1}, nil))

		matches, err := col.View().TopK([]float32{1, 2, 3, 4, 5}, 3)
		require.NoError(t, err)
		assert.Nil(t, matches)
	})

	t.Run("IncompatibleQuery", func(t *testing.T) {
		col := seed(t)

		matches, err := col.View().TopK([]float32{1, 2, 3}, 2)
		require.NoError(t, err)
		assert.Nil(t, matches)
	})

	t.Run("NilQuery", func(t *testing.T) {
		col := seed(t)

		_, err := col.View().TopK(nil, 2)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("InvalidK", func(t *testing.T) {
		col := seed(t)

		_, err := col.View().TopK([]float32{1, 2, 3, 4, 5}, 0)
		require.ErrorIs(t, err, ErrInvalidK)
	})

	t.Run("UnknownMetric", func(t *testing.T) {
		col := seed(t)

		view := col.View(WithMetric(metric.Metric(99)))
		_, err := view.TopK([]float32{1, 2, 3, 4, 5}, 2)
		require.ErrorIs(t, err, metric.ErrUnknownMetric)
	})
}
