package svdb

import (
	"fmt"
	"iter"
	"sort"

	"github.com/hupe1980/svdb/metric"
)

// Item is one entry summary produced by View.Items.
type Item struct {
	// ID is the unique identifier of the entry.
	ID string
	// Dimension is the length of the stored vector.
	Dimension int
	// Metadata is the metadata map of the entry.
	Metadata map[string]string
}

// Match is one result of a top-k retrieval, ordered best-first.
type Match struct {
	// ID is the unique identifier of the entry.
	ID string
	// Score is the comparison score against the query vector.
	Score float32
	// Metadata is the metadata map of the entry.
	Metadata map[string]string
}

// View provides read-only access over a Collection: ordered iteration and
// brute-force top-k similarity retrieval.
type View struct {
	col    *Collection
	metric metric.Metric
}

// NewView creates a View over col.
func NewView(col *Collection, optFns ...ViewOption) *View {
	o := applyViewOptions(optFns)
	return &View{
		col:    col,
		metric: o.metric,
	}
}

// View creates a View over the collection.
func (c *Collection) View(optFns ...ViewOption) *View {
	return NewView(c, optFns...)
}

// Items returns a lazy sequence of entry summaries in metadata row order.
// Each invocation re-reads both containers, so the sequence is restartable.
//
// A row whose id has no stored vector (a diverged entry) yields a non-nil
// error for that element; iteration continues with the next row.
func (v *View) Items() iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		rows, err := v.col.meta.LoadAll()
		if err != nil {
			yield(Item{}, err)
			return
		}

		container, err := v.col.vectors.Load()
		if err != nil {
			yield(Item{}, err)
			return
		}

		for _, row := range rows {
			vec, ok := container.Get(row.ID)
			if !ok {
				if !yield(Item{}, fmt.Errorf("no vector stored for id %q", row.ID)) {
					return
				}
				continue
			}

			item := Item{
				ID:        row.ID,
				Dimension: len(vec),
				Metadata:  row.Meta,
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// TopK retrieves the k entries scoring highest against query under the
// view's metric, with their metadata.
//
// Scores are ranked descending for every metric; with a distance metric the
// ordering is therefore farthest-first. Ties keep id order.
//
// An incompatible query vector or a collection holding fewer than k entries
// aborts the search: an error-level log is emitted and (nil, nil) is
// returned, never a short list. I/O and corruption errors are returned.
func (v *View) TopK(query []float32, k int) ([]Match, error) {
	if query == nil {
		return nil, fmt.Errorf("%w: query vector is required", ErrInvalidArgument)
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}

	compare, err := metric.Provider(v.metric)
	if err != nil {
		return nil, err
	}

	container, err := v.col.vectors.Load()
	if err != nil {
		v.col.logger.LogTopK(k, 0, err)
		return nil, err
	}

	if !v.col.vectors.Valid(query, container) {
		v.col.logger.Error("query vector is not compatible, aborting top-k search", "k", k)
		return nil, nil
	}
	if container.Len() < k {
		v.col.logger.Error("insufficient entries for top-k search",
			"k", k,
			"entries", container.Len(),
		)
		return nil, nil
	}

	type scored struct {
		id    string
		score float32
	}

	results := make([]scored, 0, container.Len())
	for _, id := range container.Keys() {
		vec, _ := container.Get(id)
		results = append(results, scored{id: id, score: compare(vec, query)})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	matches := make([]Match, 0, k)
	for _, r := range results[:k] {
		meta, err := v.col.meta.MetaByID(r.id)
		if err != nil {
			v.col.logger.LogTopK(k, 0, err)
			return nil, err
		}
		matches = append(matches, Match{ID: r.id, Score: r.score, Metadata: meta})
	}

	v.col.logger.LogTopK(k, len(matches), nil)
	return matches, nil
}
