package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Snapshot - Persisted Graph Document
// =============================================================================

// Snapshot is the persisted form of a graph: every node and edge, in order.
// Group membership and focus are deliberately not included.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Nodes: make([]Node, len(s.Nodes)),
		Edges: make([]Edge, len(s.Edges)),
	}
	for i, n := range s.Nodes {
		out.Nodes[i] = n.Clone()
	}
	for i, e := range s.Edges {
		out.Edges[i] = e.Clone()
	}
	return out
}

// =============================================================================
// Snapshot Serialization API
// =============================================================================

// MarshalSnapshot encodes a snapshot as compact JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	s = normalize(s)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes JSON produced by [MarshalSnapshot] or by the
// editor. Missing arrays decode as empty slices.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	return readSnapshotFrom(bytes.NewReader(data))
}

// WriteSnapshot writes a snapshot as indented JSON to an io.Writer.
func WriteSnapshot(s Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(s)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteSnapshotFile writes a snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteSnapshotFile(s Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteSnapshot(s, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot from an io.Reader.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	return readSnapshotFrom(r)
}

// ReadSnapshotFile reads a JSON snapshot file.
func ReadSnapshotFile(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readSnapshotFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

// readSnapshotFrom decodes exactly one JSON object from r.
func readSnapshotFrom(r io.Reader) (Snapshot, error) {
	dec := json.NewDecoder(r)
	var s *Snapshot
	if err := dec.Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	if s == nil {
		return Snapshot{}, fmt.Errorf("decode: snapshot is null")
	}
	if _, err := dec.Token(); err != io.EOF {
		return Snapshot{}, fmt.Errorf("decode: unexpected data after snapshot")
	}
	return normalize(*s), nil
}

// normalize replaces nil arrays so that they encode as [] rather than null.
func normalize(s Snapshot) Snapshot {
	if s.Nodes == nil {
		s.Nodes = []Node{}
	}
	if s.Edges == nil {
		s.Edges = []Edge{}
	}
	return s
}
