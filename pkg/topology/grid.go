package topology

import (
	apperrors "github.com/martinmoraga/pyvolt/pkg/errors"
	"github.com/martinmoraga/pyvolt/pkg/serializer"
)

// Grid is the element registry measurements resolve against. Nodes and
// Branches come straight from the grid document; Init must be called before
// lookups.
type Grid struct {
	Nodes    []*Node   `json:"nodes" yaml:"nodes"`
	Branches []*Branch `json:"branches" yaml:"branches"`

	byUUID map[string]Element
}

// Init validates the grid and builds the lookup index. Element UUIDs must be
// non-empty and unique across nodes and branches; bus types normalize to
// upper case with PQ as the default; branch endpoints, when set, must
// reference known nodes.
func (g *Grid) Init() error {
	g.byUUID = make(map[string]Element, len(g.Nodes)+len(g.Branches))

	for i, n := range g.Nodes {
		if n == nil || n.UUID == "" {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
				"node has no uuid", map[string]any{"index": i})
		}
		if _, exists := g.byUUID[n.UUID]; exists {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
				"duplicate element uuid", map[string]any{"uuid": n.UUID})
		}
		if n.Type == "" {
			n.Type = BusPQ
		} else {
			bt, ok := ParseBusType(string(n.Type))
			if !ok {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
					"unknown bus type", map[string]any{"uuid": n.UUID, "busType": string(n.Type)})
			}
			n.Type = bt
		}
		g.byUUID[n.UUID] = n
	}

	for i, b := range g.Branches {
		if b == nil || b.UUID == "" {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
				"branch has no uuid", map[string]any{"index": i})
		}
		if _, exists := g.byUUID[b.UUID]; exists {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
				"duplicate element uuid", map[string]any{"uuid": b.UUID})
		}
		for _, ref := range []string{b.FromNode, b.ToNode} {
			if ref == "" {
				continue
			}
			el, ok := g.byUUID[ref]
			if !ok {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
					"branch references unknown node", map[string]any{"uuid": b.UUID, "node": ref})
			}
			if el.GetKind() != KindNode {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidArgument,
					"branch endpoint is not a node", map[string]any{"uuid": b.UUID, "node": ref})
			}
		}
		g.byUUID[b.UUID] = b
	}

	return nil
}

// Element returns the element with the given uuid regardless of kind.
func (g *Grid) Element(uuid string) (Element, error) {
	el, ok := g.byUUID[uuid]
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"element not found", map[string]any{"uuid": uuid})
	}
	return el, nil
}

// Node returns the node with the given uuid.
func (g *Grid) Node(uuid string) (*Node, error) {
	el, err := g.Element(uuid)
	if err != nil {
		return nil, err
	}
	n, ok := el.(*Node)
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"element is not a node", map[string]any{"uuid": uuid, "kind": el.GetKind().String()})
	}
	return n, nil
}

// Branch returns the branch with the given uuid.
func (g *Grid) Branch(uuid string) (*Branch, error) {
	el, err := g.Element(uuid)
	if err != nil {
		return nil, err
	}
	b, ok := el.(*Branch)
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"element is not a branch", map[string]any{"uuid": uuid, "kind": el.GetKind().String()})
	}
	return b, nil
}

// Len returns the number of registered elements.
func (g *Grid) Len() int {
	return len(g.Nodes) + len(g.Branches)
}

// Load reads a grid document from a file path or URL and initializes it.
// Format is detected from the extension (JSON or YAML).
func Load(path string) (*Grid, error) {
	g, err := serializer.FromFile[Grid](path)
	if err != nil {
		return nil, err
	}
	if err := g.Init(); err != nil {
		return nil, err
	}
	return g, nil
}
