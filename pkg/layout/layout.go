// Package layout turns a JSON Canvas document into a grid diagram.
//
// [Build] places every canvas node with [diagram.Manager.AddNodeAtValidSpot]
// and routes every canvas edge with [diagram.Manager.DrawEdge]. When no
// spot is free the frame grows. When no attachment pair connects, empty
// lines are inserted along a free corridor between the two nodes, and an
// edge with no corridor at all rips up an earlier edge in its way. Each
// node or edge gets at most [Options.MaxAttempts] tries. Finally redundant
// rows and columns are purged.
//
// Canvas nodes get short letter ids (a, b, ..., z, aa, ...) so the
// structural text form stays readable. [Result.Labels] maps them back to
// the node text.
package layout

import (
	"cmp"
	"context"
	"io"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/koljapluemer/canvasgrid/pkg/canvas"
	"github.com/koljapluemer/canvasgrid/pkg/diagram"
	errs "github.com/koljapluemer/canvasgrid/pkg/errors"
	"github.com/koljapluemer/canvasgrid/pkg/grid"
)

const (
	// DefaultSeed seeds placement and node order when none is given.
	DefaultSeed = uint64(42)

	// DefaultMaxAttempts bounds the grow-and-retry loop for one node or edge.
	DefaultMaxAttempts = 64
)

// Options configures [Build].
type Options struct {
	Seed        uint64
	MaxAttempts int
	Purge       bool

	Recorder diagram.Recorder
	Logger   *log.Logger
}

// WithDefaults fills zero fields with their defaults.
func (o Options) WithDefaults() Options {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Stats counts the work done by [Build].
type Stats struct {
	Placed   int
	Routed   int
	RippedUp int
	Growths  int
	Attempts int
	Purged   int
}

// Result is a finished layout.
type Result struct {
	Manager *diagram.Manager
	// Labels maps grid node ids to display text.
	Labels map[string]string
	// IDs maps canvas node ids to grid node ids.
	IDs   map[string]string
	Stats Stats
}

// LetterID returns the i-th letter id: a..z, then aa, ab, and so on.
func LetterID(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append(b, byte('a'+(i-1)%26))
	}
	slices.Reverse(b)
	return string(b)
}

type builder struct {
	ctx   context.Context
	opts  Options
	m     *diagram.Manager
	rng   *rand.Rand
	stats Stats
}

// Build lays out the nodes and edges of c. Group nodes and edges touching
// them are ignored. Running out of attempts is an ATTEMPTS_EXHAUSTED error.
func Build(ctx context.Context, c *canvas.Canvas, opts Options) (*Result, error) {
	opts = opts.WithDefaults()
	b := &builder{
		ctx:  ctx,
		opts: opts,
		m:    diagram.New(diagram.WithSeed(opts.Seed), diagram.WithRecorder(opts.Recorder)),
		rng:  rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}

	nodes := c.LayoutNodes()
	res := &Result{
		Manager: b.m,
		Labels:  make(map[string]string, len(nodes)),
		IDs:     make(map[string]string, len(nodes)),
	}
	for i, n := range nodes {
		id := LetterID(i)
		res.IDs[n.ID] = id
		res.Labels[id] = n.DisplayText()
	}

	for _, i := range b.rng.Perm(len(nodes)) {
		if err := b.place(res.IDs[nodes[i].ID]); err != nil {
			return nil, err
		}
	}
	var routes []edgeRoute
	for _, e := range c.LayoutEdges() {
		routes = append(routes, edgeRoute{
			from:      res.IDs[e.FromNode],
			to:        res.IDs[e.ToNode],
			fromArrow: e.FromArrow(),
			toArrow:   e.ToArrow(),
		})
	}
	if err := b.fit(routes); err != nil {
		return nil, err
	}
	if err := b.routeAll(routes); err != nil {
		return nil, err
	}

	if opts.Purge {
		b.stats.Purged = b.m.PurgeRedundantColumns() + b.m.PurgeRedundantRows()
	}
	if err := b.m.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "layout produced an invalid diagram")
	}

	res.Stats = b.stats
	h, w := b.m.Size()
	opts.Logger.Debug("layout complete",
		"nodes", b.stats.Placed, "edges", b.stats.Routed,
		"growths", b.stats.Growths, "ripped_up", b.stats.RippedUp,
		"height", h, "width", w)
	return res, nil
}

// place adds one node, growing the grid until there is room.
func (b *builder) place(id string) error {
	for attempt := 0; ; attempt++ {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		b.stats.Attempts++
		_, err := b.m.AddNodeAtValidSpot(id)
		if err == nil {
			b.stats.Placed++
			return nil
		}
		if !errs.Is(err, errs.ErrCodeNoPlacement) {
			return err
		}
		if attempt >= b.opts.MaxAttempts {
			return errs.Wrap(errs.ErrCodeExhausted, err, "node %s: gave up after %d growths", id, attempt)
		}
		b.growFrame(attempt)
	}
}

// growFrame adds one empty line on the outside, cycling through bottom,
// right, top and left.
func (b *builder) growFrame(step int) {
	switch step % 4 {
	case 0:
		b.m.AddRowToEnd()
	case 1:
		b.m.AddColToEnd()
	case 2:
		b.m.AddRowToStart()
	case 3:
		b.m.AddColToStart()
	}
	b.stats.Growths++
}

type edgeRoute struct {
	from, to           string
	fromArrow, toArrow bool
}

// fit widens nodes that have more edges than borders by cloning their
// column. No edge is drawn yet, so every column can be cloned.
func (b *builder) fit(routes []edgeRoute) error {
	degree := make(map[string]int)
	for _, r := range routes {
		degree[r.from]++
		degree[r.to]++
	}
	for _, n := range b.m.Nodes() {
		for {
			cur, _ := b.m.Node(n.ID)
			if 2*(cur.Width+cur.Height) >= degree[n.ID] {
				break
			}
			if err := b.m.CloneColumn(cur.Col); err != nil {
				return err
			}
			b.stats.Growths++
		}
	}
	return nil
}

type drawnEdge struct {
	route edgeRoute
	id    string
}

// routeAll draws the queued edges in order. An edge that has no corridor
// left rips up the latest edge standing in its way, and both go back to
// the front of the queue. At most [Options.MaxAttempts] edges are ripped
// up in total.
func (b *builder) routeAll(queue []edgeRoute) error {
	var drawn []drawnEdge
	for len(queue) > 0 {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		r := queue[0]
		queue = queue[1:]
		id, err := b.route(r, queue)
		if err == nil {
			drawn = append(drawn, drawnEdge{r, id})
			continue
		}
		if !errs.Is(err, errs.ErrCodeNoRoute) {
			return err
		}
		if len(drawn) == 0 || b.stats.RippedUp >= b.opts.MaxAttempts {
			return errs.Wrap(errs.ErrCodeExhausted, err, "edge %s -> %s: gave up after %d rip-ups", r.from, r.to, b.stats.RippedUp)
		}

		i := b.blocker(r, drawn)
		victim := drawn[i]
		drawn = slices.Delete(drawn, i, i+1)
		if _, err := b.m.RemoveEdge(victim.id); err != nil {
			return err
		}
		b.stats.RippedUp++
		b.stats.Routed--
		b.opts.Logger.Debug("ripped up edge", "edge", victim.id, "from", victim.route.from, "to", victim.route.to, "for", r.from+"->"+r.to)
		queue = append([]edgeRoute{r, victim.route}, queue...)
	}
	return nil
}

// blocker returns the index of the latest drawn edge whose removal opens a
// corridor for r, or the latest edge when no single removal does.
func (b *builder) blocker(r edgeRoute, drawn []drawnEdge) int {
	for i := len(drawn) - 1; i >= 0; i-- {
		trial := b.m.Clone()
		trial.SetRecorder(nil)
		if _, err := trial.RemoveEdge(drawn[i].id); err != nil {
			continue
		}
		if _, ok := corridorOn(trial, r); ok {
			return i
		}
	}
	return len(drawn) - 1
}

// route draws one edge and returns its id. While a corridor exists but no
// attachment pair can be drawn, the grid is widened along the corridor.
// Drawable pairs that would cut off a pending edge are skipped once; on the
// next rejection the first drawable pair is taken. Without any corridor the
// result is a NO_ROUTE error.
func (b *builder) route(r edgeRoute, pending []edgeRoute) (string, error) {
	strict, rejected := true, 0
	for attempt := 0; ; attempt++ {
		if err := b.ctx.Err(); err != nil {
			return "", err
		}
		b.stats.Attempts++
		id, drawable, err := b.tryRoute(r, pending, strict)
		if err == nil {
			b.stats.Routed++
			return id, nil
		}
		if !errs.Is(err, errs.ErrCodeNoRoute) {
			return "", err
		}
		if drawable {
			if rejected++; rejected > 1 {
				strict = false
				continue
			}
		}
		c, ok := corridorOn(b.m, r)
		if !ok {
			return "", err
		}
		if attempt >= b.opts.MaxAttempts {
			return "", errs.Wrap(errs.ErrCodeExhausted, err, "edge %s -> %s: gave up after %d growths", r.from, r.to, attempt)
		}
		if err := b.widen(c); err != nil {
			return "", err
		}
	}
}

// widen inserts the empty lines a corridor needs, last index first so the
// earlier indices stay valid.
func (b *builder) widen(c corridor) error {
	rows, cols := c.lines()
	for _, line := range []struct {
		counts map[int]int
		insert func(int) error
	}{
		{rows, b.m.InsertRow},
		{cols, b.m.InsertColumn},
	} {
		at := slices.Collect(maps.Keys(line.counts))
		slices.Sort(at)
		slices.Reverse(at)
		for _, i := range at {
			for range line.counts[i] {
				if err := line.insert(i); err != nil {
					return err
				}
				b.stats.Growths++
			}
		}
	}
	return nil
}

type attachmentPair struct {
	from, to grid.Coordinate
	dist     int
}

// tryRoute tries every pair of attachment points, closest first, and keeps
// the first edge that can be drawn. When strict, a pair is only kept if
// every pending edge that still has a corridor keeps one. drawable reports
// whether some pair could be drawn at all.
func (b *builder) tryRoute(r edgeRoute, pending []edgeRoute, strict bool) (id string, drawable bool, err error) {
	from, ok := b.m.Node(r.from)
	if !ok {
		return "", false, errs.New(errs.ErrCodeNotFound, "unknown node %q", r.from)
	}
	to, ok := b.m.Node(r.to)
	if !ok {
		return "", false, errs.New(errs.ErrCodeNotFound, "unknown node %q", r.to)
	}

	var pairs []attachmentPair
	targets := b.m.ValidAttachmentPoints(to)
	for _, fp := range b.m.ValidAttachmentPoints(from) {
		for _, tp := range targets {
			if fp != tp {
				pairs = append(pairs, attachmentPair{fp, tp, fp.Manhattan(tp)})
			}
		}
	}
	slices.SortStableFunc(pairs, func(x, y attachmentPair) int { return cmp.Compare(x.dist, y.dist) })

	var watch []edgeRoute
	if strict {
		for _, p := range pending {
			if _, ok := corridorOn(b.m, p); ok {
				watch = append(watch, p)
			}
		}
	}

	for _, p := range pairs {
		dr := diagram.Route{
			Sender:        r.from,
			Receiver:      r.to,
			SenderPoint:   p.from,
			ReceiverPoint: p.to,
			SenderArrow:   r.fromArrow,
			ReceiverArrow: r.toArrow,
		}
		if len(watch) > 0 {
			trial := b.m.Clone()
			trial.SetRecorder(nil)
			if _, err := trial.DrawEdge(dr); err != nil {
				if errs.Is(err, errs.ErrCodeNoRoute) {
					continue
				}
				return "", drawable, err
			}
			drawable = true
			if !keepsOpen(trial, watch) {
				continue
			}
		}
		e, err := b.m.DrawEdge(dr)
		if err == nil {
			return e.ID, true, nil
		}
		if !errs.Is(err, errs.ErrCodeNoRoute) {
			return "", drawable, err
		}
	}
	return "", drawable, errs.New(errs.ErrCodeNoRoute, "no route from %s to %s among %d attachment pairs", r.from, r.to, len(pairs))
}

// keepsOpen reports whether every route still has a corridor in m.
func keepsOpen(m *diagram.Manager, routes []edgeRoute) bool {
	for _, r := range routes {
		if _, ok := corridorOn(m, r); !ok {
			return false
		}
	}
	return true
}
