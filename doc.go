// Package svdb provides an embedded store for text embeddings.
//
// A collection is a directory holding two container files: a binary keyed
// vector container and a columnar metadata table. Each entry pairs a unique
// string id with one float32 vector and a free-form string-to-string
// metadata map. The two containers are kept logically synchronized by the
// Collection; a View layers ordered iteration and brute-force top-k
// similarity retrieval on top.
//
// # Quick start
//
//	col, err := svdb.Open("./collections/articles")
//	if err != nil {
//	    panic(err)
//	}
//
//	_ = col.Insert("a1", []float32{0.1, 0.7, 0.2}, map[string]string{"source": "api"})
//
//	view := col.View()
//	matches, err := view.TopK([]float32{0.1, 0.7, 0.3}, 3)
//
// # Error model
//
// Mutating operations return a non-nil error only for invalid arguments
// (empty id, nil vector). Business rejections (duplicate id, unknown id,
// incompatible vector shape) and I/O failures during a mutation are logged
// through the configured Logger and the call returns nil. Configure a logger
// with WithLogger to observe them; the default logger discards everything.
//
// Read paths (View.Items, View.TopK) propagate I/O and corruption errors.
//
// # Concurrency
//
// The store is single-threaded and fully synchronous. Container files are
// opened per call and never held across calls, and there is no locking of
// any kind: concurrent mutation of one collection, from this process or
// another, produces undefined results.
package svdb
