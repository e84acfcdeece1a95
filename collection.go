package svdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/svdb/metastore"
	"github.com/hupe1980/svdb/vectorstore"
)

const (
	vectorFileName = "space.vec"
	tableFileName  = "space.tbl"
)

// Collection pairs a vector container and a metadata container under one
// directory and keeps them logically synchronized.
//
// Mutations touch the vector container first, then the metadata container.
// There is no transaction spanning the two files: a metadata write that
// fails after a successful vector write leaves an orphan vector without a
// row. Such failures are logged, not returned.
type Collection struct {
	path    string
	vectors *vectorstore.Store
	meta    *metastore.Store
	logger  *Logger
}

// Open opens the collection at path, creating the directory and an empty
// vector container on first use. Opening an existing collection is
// idempotent and logs a warning.
//
// The metadata container is not created until the first successful insert.
func Open(path string, optFns ...Option) (*Collection, error) {
	o := applyOptions(optFns)
	logger := o.logger.WithCollection(path)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		logger.Warn("collection already exists")
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("svdb: create collection %s: %w", path, err)
		}
		logger.Info("collection created")
	}

	vectors := vectorstore.New(filepath.Join(path, vectorFileName))
	if err := vectors.Create(); err != nil && !errors.Is(err, vectorstore.ErrExists) {
		return nil, fmt.Errorf("svdb: init vector container: %w", err)
	}

	return &Collection{
		path:    path,
		vectors: vectors,
		meta:    metastore.New(filepath.Join(path, tableFileName), o.codec),
		logger:  logger,
	}, nil
}

// Path returns the collection directory.
func (c *Collection) Path() string {
	return c.path
}

// Insert adds a new entry.
//
// An empty id or nil vector returns ErrInvalidArgument. An id that already
// exists or a vector whose shape is incompatible with the collection skips
// the insert with a warning log and a nil error, leaving both containers
// unchanged. A nil metadata map is stored as an empty one.
func (c *Collection) Insert(id string, vector []float32, metadata map[string]string) error {
	if id == "" || vector == nil {
		return fmt.Errorf("%w: id and vector are required", ErrInvalidArgument)
	}

	container, err := c.vectors.Load()
	if err != nil {
		c.logger.LogInsert(id, err)
		return nil
	}
	if container.Contains(id) {
		c.logger.Warn("id already exists, skipping insert", "id", id)
		return nil
	}
	if !c.vectors.Valid(vector, container) {
		c.logger.Warn("vector is not compatible, skipping insert", "id", id)
		return nil
	}

	if err := c.vectors.Put(id, vector); err != nil {
		c.logger.LogInsert(id, err)
		return nil
	}
	// A failure past this point leaves the vector without a metadata row;
	// no rollback is attempted.
	if err := c.meta.Append(metastore.Row{ID: id, Meta: metadata}); err != nil {
		c.logger.LogInsert(id, err)
		return nil
	}

	c.logger.LogInsert(id, nil)
	return nil
}

// Update replaces the vector and metadata of an existing entry.
//
// An empty id or nil vector returns ErrInvalidArgument. An unknown id or a
// vector whose length differs from the collection's pinned dimensionality
// skips the update with a warning log and a nil error.
func (c *Collection) Update(id string, vector []float32, metadata map[string]string) error {
	if id == "" || vector == nil {
		return fmt.Errorf("%w: id and vector are required", ErrInvalidArgument)
	}

	container, err := c.vectors.Load()
	if err != nil {
		c.logger.LogUpdate(id, err)
		return nil
	}
	if !container.Contains(id) {
		c.logger.Warn("id does not exist, skipping update", "id", id)
		return nil
	}
	if !c.vectors.Valid(vector, container) {
		c.logger.Warn("vector is not compatible, skipping update", "id", id)
		return nil
	}

	if err := c.vectors.Put(id, vector); err != nil {
		c.logger.LogUpdate(id, err)
		return nil
	}
	if err := c.meta.UpdateMeta(id, metadata); err != nil {
		c.logger.LogUpdate(id, err)
		return nil
	}

	c.logger.LogUpdate(id, nil)
	return nil
}

// Delete removes an entry from both containers.
//
// An empty id returns ErrInvalidArgument. An unknown id skips the delete
// with a warning log and a nil error.
func (c *Collection) Delete(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidArgument)
	}

	container, err := c.vectors.Load()
	if err != nil {
		c.logger.LogDelete(id, err)
		return nil
	}
	if !container.Contains(id) {
		c.logger.Warn("id does not exist, skipping delete", "id", id)
		return nil
	}

	if err := c.vectors.Remove(id); err != nil {
		c.logger.LogDelete(id, err)
		return nil
	}
	if err := c.meta.RemoveByID(id); err != nil {
		c.logger.LogDelete(id, err)
		return nil
	}

	c.logger.LogDelete(id, nil)
	return nil
}
