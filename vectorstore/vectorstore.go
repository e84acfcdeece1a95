// Package vectorstore owns the binary keyed vector container of a
// collection: a mapping from string id to a single float32 vector, persisted
// as one file.
//
// Every operation opens the container, operates, and releases it; no handle
// is held across calls. The whole container is rewritten on every mutation.
// There is no locking: concurrent writers, in-process or external, produce
// undefined results.
package vectorstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hupe1980/svdb/persistence"
	"github.com/klauspost/compress/zstd"
)

const (
	// MagicNumber identifies vector container files (ASCII: "SVEC").
	MagicNumber = 0x53564543
	// Version is the current container format version (v1.0.0).
	Version = 0x00010000

	// MaxDimension is the maximum allowed vector length.
	MaxDimension = 2048
)

// ErrExists is returned by Create when a container file is already present.
// It is informational: the existing container is left untouched.
var ErrExists = errors.New("vector container already exists")

// Container is an in-memory snapshot of the keyed vector file.
//
// Once non-empty, every vector in the container has the same length (the
// collection's pinned dimensionality).
type Container map[string][]float32

// Contains reports whether id is present.
func (c Container) Contains(id string) bool {
	_, ok := c[id]
	return ok
}

// Get returns the vector stored under id.
func (c Container) Get(id string) ([]float32, bool) {
	v, ok := c[id]
	return v, ok
}

// Keys returns all ids in sorted order.
func (c Container) Keys() []string {
	keys := make([]string, 0, len(c))
	for id := range c {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored vectors.
func (c Container) Len() int {
	return len(c)
}

// Store provides keyed CRUD on the vector container file of one collection.
type Store struct {
	path string
}

// New creates a Store operating on the container file at path.
// The file itself is created by Create.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the container file path.
func (s *Store) Path() string {
	return s.path
}

// Create initializes an empty container file.
//
// If a container already exists at the path it is left untouched and
// ErrExists is returned.
func (s *Store) Create() error {
	if _, err := os.Stat(s.path); err == nil {
		return ErrExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return s.save(Container{})
}

// Load reads the full container into memory.
// A missing container file yields an empty container.
func (s *Store) Load() (Container, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return Container{}, nil
	}

	var c Container
	err := persistence.LoadFromFile(s.path, func(r io.Reader) error {
		var err error
		c, err = readContainer(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("vectorstore: load %s: %w", s.path, err)
	}
	return c, nil
}

// Valid reports whether vec may be inserted into the container.
//
// A vector is valid iff its length does not exceed MaxDimension and, for a
// non-empty container, matches the length of a reference vector already
// stored. The reference is whichever entry map iteration yields first; since
// all stored vectors share one length, the choice does not matter.
func (s *Store) Valid(vec []float32, c Container) bool {
	if len(vec) > MaxDimension {
		return false
	}
	for _, ref := range c {
		return len(vec) == len(ref)
	}
	return true
}

// Put writes vec under id, overwriting any existing vector.
func (s *Store) Put(id string, vec []float32) error {
	c, err := s.Load()
	if err != nil {
		return err
	}
	c[id] = vec
	return s.save(c)
}

// Remove deletes the vector stored under id.
// Removing an absent id is a no-op.
func (s *Store) Remove(id string) error {
	c, err := s.Load()
	if err != nil {
		return err
	}
	if !c.Contains(id) {
		return nil
	}
	delete(c, id)
	return s.save(c)
}

// Contains reports whether a vector is stored under id.
func (s *Store) Contains(id string) (bool, error) {
	c, err := s.Load()
	if err != nil {
		return false, err
	}
	return c.Contains(id), nil
}

// Get returns the vector stored under id.
func (s *Store) Get(id string) ([]float32, bool, error) {
	c, err := s.Load()
	if err != nil {
		return nil, false, err
	}
	v, ok := c.Get(id)
	return v, ok, nil
}

// Keys returns all stored ids in sorted order.
func (s *Store) Keys() ([]string, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}
	return c.Keys(), nil
}

// Len returns the number of stored vectors.
func (s *Store) Len() (int, error) {
	c, err := s.Load()
	if err != nil {
		return 0, err
	}
	return c.Len(), nil
}

// save atomically rewrites the container file.
// Records are written sorted by id so an unchanged container produces
// byte-identical files.
func (s *Store) save(c Container) error {
	err := persistence.SaveToFile(s.path, func(w io.Writer) error {
		return writeContainer(w, c)
	})
	if err != nil {
		return fmt.Errorf("vectorstore: save %s: %w", s.path, err)
	}
	return nil
}

// File layout: header (magic, version, count), zstd-compressed record block,
// CRC32 footer over the compressed block.
//
// Record: uint16 id length, id bytes, uint32 dimension, dimension float32s.
// All integers little-endian.

func writeContainer(w io.Writer, c Container) error {
	for _, v := range []uint32{MagicNumber, Version, uint32(len(c))} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	cw := persistence.NewChecksumWriter(w)

	zw, err := zstd.NewWriter(cw)
	if err != nil {
		return err
	}

	for _, id := range c.Keys() {
		vec := c[id]
		if err := binary.Write(zw, binary.LittleEndian, uint16(len(id))); err != nil {
			return err
		}
		if _, err := zw.Write([]byte(id)); err != nil {
			return err
		}
		if err := binary.Write(zw, binary.LittleEndian, uint32(len(vec))); err != nil {
			return err
		}
		if err := binary.Write(zw, binary.LittleEndian, vec); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, cw.Sum())
}

func readContainer(r io.Reader) (Container, error) {
	var magic, version, count uint32
	for _, v := range []*uint32{&magic, &version, &count} {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", persistence.ErrInvalidMagic, magic)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: got 0x%08x", persistence.ErrInvalidVersion, version)
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(rest) < 4 {
		return nil, persistence.ErrTruncated
	}

	payload := rest[:len(rest)-4]
	expected := binary.LittleEndian.Uint32(rest[len(rest)-4:])
	if actual := persistence.CalculateChecksum(payload); actual != expected {
		return nil, &persistence.ChecksumMismatchError{Expected: expected, Actual: actual}
	}

	zr, err := zstd.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	c := make(Container, count)
	for i := uint32(0); i < count; i++ {
		var idLen uint16
		if err := binary.Read(zr, binary.LittleEndian, &idLen); err != nil {
			return nil, err
		}
		id := make([]byte, idLen)
		if _, err := io.ReadFull(zr, id); err != nil {
			return nil, err
		}
		var dim uint32
		if err := binary.Read(zr, binary.LittleEndian, &dim); err != nil {
			return nil, err
		}
		vec := make([]float32, dim)
		if err := binary.Read(zr, binary.LittleEndian, vec); err != nil {
			return nil, err
		}
		c[string(id)] = vec
	}

	return c, nil
}
