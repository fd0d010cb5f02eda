// Package nodelink renders grid diagrams as node-link graphs with Graphviz.
//
// [ToDOT] writes DOT source in which every node is pinned to the centre of
// its grid rectangle. [RenderSVG] lays that source out with neato, which
// respects the pins, so the picture keeps the grid arrangement while
// Graphviz draws the edges.
//
//	dot := nodelink.ToDOT(m, nodelink.Options{Labels: labels})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering,
// so no Graphviz installation is needed.
package nodelink
