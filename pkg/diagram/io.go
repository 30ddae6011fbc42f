package diagram

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/classlink/pkg/errors"
)

// ReadJSON decodes a diagram from r.
//
// Nodes and relationships with an empty id are assigned a random UUID.
// Relationship kinds are normalized with [ParseKind]; unknown kinds are kept.
//
// ReadJSON returns an INVALID_DIAGRAM error if:
//   - The JSON is malformed
//   - Two nodes or two relationships share an id
//   - A node has a negative width or height
//
// Relationships that reference missing nodes are accepted. Use
// [Diagram.Dangling] to find them.
func ReadJSON(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "decode")
	}
	if err := normalize(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ImportJSON reads the diagram file at path.
func ImportJSON(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes d as indented JSON. The output can be re-read with
// [ReadJSON].
func WriteJSON(d *Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to a JSON file at path.
func ExportJSON(d *Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

func normalize(d *Diagram) error {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Relationships == nil {
		d.Relationships = []Relationship{}
	}

	seen := make(map[string]bool, len(d.Nodes))
	for i := range d.Nodes {
		n := &d.Nodes[i]
		if n.ID == "" {
			n.ID = uuid.NewString()
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidDiagram, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if n.Width < 0 || n.Height < 0 {
			return errors.New(errors.ErrCodeInvalidDiagram, "node %q has negative size %gx%g", n.ID, n.Width, n.Height)
		}
	}

	seen = make(map[string]bool, len(d.Relationships))
	for i := range d.Relationships {
		r := &d.Relationships[i]
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if seen[r.ID] {
			return errors.New(errors.ErrCodeInvalidDiagram, "duplicate relationship id %q", r.ID)
		}
		seen[r.ID] = true
		r.Kind = ParseKind(string(r.Kind))
	}
	return nil
}
