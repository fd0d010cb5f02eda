// Package diagram owns the nodes and edges of a grid diagram and performs
// every operation that changes them.
//
// # Overview
//
// A [Manager] holds rectangular [Node] values and routed [Edge] values. It
// never stores cells: every spatial question is answered by materializing a
// fresh [grid.Grid] with [Manager.Grid] and querying it. Edges and
// attachments refer to nodes by id only.
//
// # Placement and Routing
//
// [Manager.AddNodeAtValidSpot] drops a 1x1 node on a random cell whose eight
// neighbours are free. [Manager.ValidAttachmentPoints] lists perimeter cells
// that have a free cell behind them, and [Manager.DrawEdge] routes a
// Manhattan path between two such points. Neither operation grows the grid
// or retries; the layout package does that. [Manager.RemoveEdge] takes a
// routed edge back out.
//
// # Resizing
//
// Rows and columns can be added at either end, inserted anywhere
// ([Manager.InsertRow], [Manager.InsertColumn]), cloned in place
// ([Manager.CloneColumn], [Manager.CloneRow]) and purged when empty or
// redundant ([Manager.PurgeRedundantColumns], [Manager.PurgeRedundantRows]).
// All of them keep node rectangles and edge paths consistent, which
// [Manager.Validate] checks.
//
// # Diagnostics
//
// A [Recorder] passed with [WithRecorder] receives one [Event] with a
// structural snapshot after every mutation. [History] collects them.
//
// # Concurrency
//
// A Manager is not safe for concurrent mutation. Read-only methods may run
// concurrently once mutation has finished.
package diagram
