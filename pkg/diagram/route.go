package diagram

import (
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

// Route describes an edge to draw between two attachment points.
type Route struct {
	Sender        string
	Receiver      string
	SenderPoint   grid.Coordinate
	ReceiverPoint grid.Coordinate
	SenderArrow   bool
	ReceiverArrow bool
}

// DrawEdge routes a new edge between the two attachment points.
//
// The path leaves the sender point away from the sender node and enters the
// receiver point from the side facing away from the receiver node. The edge
// gets the smallest unused non-negative integer id. A missing path is a
// NO_ROUTE error; nothing is retried.
func (m *Manager) DrawEdge(r Route) (Edge, error) {
	sender, err := m.node(r.Sender)
	if err != nil {
		return Edge{}, err
	}
	receiver, err := m.node(r.Receiver)
	if err != nil {
		return Edge{}, err
	}
	senderSide, ok := SideOf(sender, r.SenderPoint)
	if !ok {
		return Edge{}, errs.New(errs.ErrCodeInvalidInput, "point %v does not touch node %q", r.SenderPoint, sender.ID)
	}
	receiverSide, ok := SideOf(receiver, r.ReceiverPoint)
	if !ok {
		return Edge{}, errs.New(errs.ErrCodeInvalidInput, "point %v does not touch node %q", r.ReceiverPoint, receiver.ID)
	}

	g := m.Grid()
	for _, p := range []grid.Coordinate{r.SenderPoint, r.ReceiverPoint} {
		if !g.IsCellEmpty(p) {
			return Edge{}, errs.New(errs.ErrCodeNoRoute, "attachment point %v is not free", p)
		}
	}
	path := g.FindPathWithForcedEnds(r.SenderPoint, r.ReceiverPoint, senderSide, receiverSide)
	if path == nil {
		return Edge{}, errs.New(errs.ErrCodeNoRoute,
			"no valid path exists between attachment points %v and %v with required breathing-space moves",
			r.SenderPoint, r.ReceiverPoint)
	}

	e := Edge{
		ID:       m.nextEdgeID(),
		Sender:   Attachment{NodeID: sender.ID, Direction: senderSide.Opposite(), HasArrow: r.SenderArrow},
		Receiver: Attachment{NodeID: receiver.ID, Direction: receiverSide.Opposite(), HasArrow: r.ReceiverArrow},
		Cells:    path,
	}
	m.edgeIndex[e.ID] = len(m.edges)
	m.edges = append(m.edges, &e)
	m.record(EventRoute, "routed edge %s from %s to %s in %d cells", e.ID, sender.ID, receiver.ID, len(path))
	return e.clone(), nil
}
