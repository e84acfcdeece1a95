// Package metastore owns the columnar metadata container of a collection:
// an ordered sequence of {id, meta} rows under a fixed two-column schema,
// persisted as one file.
//
// There are no in-place row edits. Every mutation reads the full current
// snapshot, transforms it in memory, and atomically writes a brand-new
// snapshot; cost is O(n) in the number of existing rows per call.
package metastore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/svdb/codec"
	"github.com/hupe1980/svdb/persistence"
)

const (
	// MagicNumber identifies metadata container files (ASCII: "SVTB").
	MagicNumber = 0x53565442
	// Version is the current container format version (v1.0.0).
	Version = 0x00010000
)

var (
	// ErrRowNotFound is returned by point lookups for an unknown id.
	ErrRowNotFound = errors.New("metadata row not found")

	// ErrUnknownCodec is returned when a container file names a codec that
	// is not built in.
	ErrUnknownCodec = errors.New("unknown codec")
)

// Row is one metadata record.
type Row struct {
	ID   string
	Meta map[string]string
}

// table is the columnar on-disk representation of the row sequence.
type table struct {
	IDs   []string            `json:"id"`
	Metas []map[string]string `json:"meta"`
}

// Store provides full-snapshot CRUD on the metadata container file of one
// collection. The file does not exist until the first SaveAll.
type Store struct {
	path   string
	codec  codec.Codec
	schema Schema
}

// New creates a Store operating on the container file at path.
// If c is nil, codec.Default is used.
func New(path string, c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{
		path:   path,
		codec:  c,
		schema: DefaultSchema(),
	}
}

// Path returns the container file path.
func (s *Store) Path() string {
	return s.path
}

// Schema returns the fixed column layout.
func (s *Store) Schema() Schema {
	return s.schema
}

// LoadAll reads all rows in container order.
// A missing container file yields an empty sequence.
func (s *Store) LoadAll() ([]Row, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	var rows []Row
	err := persistence.LoadFromFile(s.path, func(r io.Reader) error {
		var err error
		rows, err = readTable(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("metastore: load %s: %w", s.path, err)
	}
	return rows, nil
}

// SaveAll replaces the container content with rows.
func (s *Store) SaveAll(rows []Row) error {
	for _, row := range rows {
		if err := s.schema.Validate(row); err != nil {
			return fmt.Errorf("metastore: %w", err)
		}
	}

	err := persistence.SaveToFile(s.path, func(w io.Writer) error {
		return writeTable(w, s.codec, rows)
	})
	if err != nil {
		return fmt.Errorf("metastore: save %s: %w", s.path, err)
	}
	return nil
}

// Append adds a row after the current last row.
func (s *Store) Append(row Row) error {
	rows, err := s.LoadAll()
	if err != nil {
		return err
	}
	return s.SaveAll(append(rows, row))
}

// RemoveByID drops the row whose id matches; other rows are kept in order.
func (s *Store) RemoveByID(id string) error {
	rows, err := s.LoadAll()
	if err != nil {
		return err
	}

	kept := rows[:0]
	for _, row := range rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	return s.SaveAll(kept)
}

// UpdateMeta replaces the meta field of the row whose id matches; all other
// rows are rewritten unchanged.
func (s *Store) UpdateMeta(id string, meta map[string]string) error {
	rows, err := s.LoadAll()
	if err != nil {
		return err
	}

	for i := range rows {
		if rows[i].ID == id {
			rows[i].Meta = meta
		}
	}
	return s.SaveAll(rows)
}

// MetaByID returns the meta field of the row whose id matches.
func (s *Store) MetaByID(id string) (map[string]string, error) {
	rows, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if row.ID == id {
			return row.Meta, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrRowNotFound, id)
}

// File layout: header (magic, version, codec name), codec-encoded columnar
// payload, CRC32 footer over the payload. The codec name makes the file
// self-describing; readers select the codec from the header.

func writeTable(w io.Writer, c codec.Codec, rows []Row) error {
	for _, v := range []uint32{MagicNumber, Version} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	name := []byte(c.Name())
	if err := binary.Write(w, binary.LittleEndian, uint16(len(name))); err != nil {
		return err
	}
	if _, err := w.Write(name); err != nil {
		return err
	}

	tbl := table{
		IDs:   make([]string, len(rows)),
		Metas: make([]map[string]string, len(rows)),
	}
	for i, row := range rows {
		tbl.IDs[i] = row.ID
		meta := row.Meta
		if meta == nil {
			meta = map[string]string{}
		}
		tbl.Metas[i] = meta
	}

	payload, err := c.Marshal(tbl)
	if err != nil {
		return err
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, persistence.CalculateChecksum(payload))
}

func readTable(r io.Reader) ([]Row, error) {
	var magic, version uint32
	for _, v := range []*uint32{&magic, &version} {
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

	var nameLen uint16
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, err
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, err
	}

	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
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

	var tbl table
	if err := c.Unmarshal(payload, &tbl); err != nil {
		return nil, err
	}
	if len(tbl.IDs) != len(tbl.Metas) {
		return nil, fmt.Errorf("column length mismatch: %d ids, %d metas", len(tbl.IDs), len(tbl.Metas))
	}

	rows := make([]Row, len(tbl.IDs))
	for i := range tbl.IDs {
		rows[i] = Row{ID: tbl.IDs[i], Meta: tbl.Metas[i]}
	}
	return rows, nil
}
