// Package pkg provides the core libraries for canvasgrid layouts.
//
// # Overview
//
// canvasgrid places the nodes of a diagram on a coarse character grid and
// routes every edge between them as a Manhattan path of grid cells. The
// result renders as plain text, as box-drawing "flow" art, or through one
// of the graphical renderers. The pkg directory is organized as:
//
//  1. [grid] - Cells, directions, glyphs and shortest-path routing
//  2. [diagram] - Nodes, edges, attachment points, growing and purging
//  3. [canvas] - JSON Canvas input documents
//  4. [layout] - Randomized placement and routing of a whole canvas
//  5. [io] - JSON and YAML serialization of finished diagrams
//  6. [render] - Text, flow, HTML, PNG, DOT, SVG and canvas output
//  7. [pipeline] - Orchestration (parse → layout → render) with caching
//  8. [cache] - File, Redis and MongoDB cache backends
//
// # Architecture
//
// The typical data flow:
//
//	.canvas document
//	       ↓
//	  [canvas] package (read + validate)
//	       ↓
//	  [layout] package (place nodes, route edges, purge)
//	       ↓
//	  [render] package (txt, flow, html, png, svg ...)
//
// # Quick Start
//
//	c, err := canvas.Import("board.canvas")
//	if err != nil {
//	    return err
//	}
//	res, err := layout.Build(ctx, c, layout.Options{Seed: layout.DefaultSeed})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Manager.Flow())
//
// The [pipeline] package wraps these steps and caches both layouts and
// rendered artifacts. Most callers should start there.
package pkg
