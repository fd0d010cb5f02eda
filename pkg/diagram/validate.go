package diagram

import (
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// Validate checks the structural invariants of the diagram and returns the
// first violation as a GRID_INTEGRITY error:
//   - the materialized grid has consistent rows;
//   - nodes are at least 1x1, inside the grid and do not overlap;
//   - edge attachments reference existing nodes;
//   - consecutive path cells are orthogonally adjacent;
//   - path cells never cover a node or another path cell;
//   - the first cell touches the sender on the side its attachment names,
//     and the last cell likewise touches the receiver.
func (m *Manager) Validate() error {
	if err := m.Grid().Check(); err != nil {
		return err
	}
	owner := make(map[grid.Coordinate]string)

	for _, n := range m.nodes {
		if n.Width < 1 || n.Height < 1 {
			return errs.New(errs.ErrCodeGridIntegrity, "node %q has size %dx%d", n.ID, n.Width, n.Height)
		}
		if n.Row < 0 || n.Col < 0 {
			return errs.New(errs.ErrCodeGridIntegrity, "node %q at %v is outside the grid", n.ID, n.Origin())
		}
		for _, c := range n.Cells() {
			if other, ok := owner[c]; ok {
				return errs.New(errs.ErrCodeGridIntegrity, "nodes %q and %q overlap at %v", other, n.ID, c)
			}
			owner[c] = n.ID
		}
	}

	for _, e := range m.edges {
		if len(e.Cells) == 0 {
			return errs.New(errs.ErrCodeGridIntegrity, "edge %q has no cells", e.ID)
		}
		for i, c := range e.Cells {
			if c.Row < 0 || c.Col < 0 {
				return errs.New(errs.ErrCodeGridIntegrity, "edge %q cell %v is outside the grid", e.ID, c)
			}
			if other, ok := owner[c]; ok {
				return errs.New(errs.ErrCodeGridIntegrity, "edge %q cell %v is already occupied by %q", e.ID, c, other)
			}
			owner[c] = e.ID
			if i > 0 && !e.Cells[i-1].Adjacent(c) {
				return errs.New(errs.ErrCodeGridIntegrity, "edge %q steps from %v to %v", e.ID, e.Cells[i-1], c)
			}
		}
		if err := m.checkEnd(e.ID, e.Sender, e.Cells[0]); err != nil {
			return err
		}
		if err := m.checkEnd(e.ID, e.Receiver, e.Cells[len(e.Cells)-1]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) checkEnd(edgeID string, a Attachment, end grid.Coordinate) error {
	n, ok := m.Node(a.NodeID)
	if !ok {
		return errs.New(errs.ErrCodeGridIntegrity, "edge %q references unknown node %q", edgeID, a.NodeID)
	}
	if !n.Contains(end.Step(a.Direction)) {
		return errs.New(errs.ErrCodeGridIntegrity, "edge %q end %v is detached from node %q", edgeID, end, n.ID)
	}
	return nil
}
