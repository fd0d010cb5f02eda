// Package render turns a grid diagram into output files.
//
// [Render] dispatches on a format name:
//
//   - txt: the structural text form, one token per cell
//   - flow: the glyph form with box-drawing edges and arrows
//   - json, yaml: the serialized diagram (see package io)
//   - html: a CSS grid page whose grid-template-areas mirror the node layout
//   - png: a raster of the flow grid
//   - dot, svg: a node-link view pinned to grid positions (see [nodelink])
//   - canvas: a JSON Canvas document with nodes at grid positions
//
// Node text is passed with [WithLabels]. Without labels every node shows
// its grid id.
//
//	data, err := render.Render(ctx, m, render.FormatHTML,
//	    render.WithLabels(labels),
//	    render.WithTitle("parser"),
//	)
//
// [nodelink]: github.com/koljapluemer/canvasgrid/pkg/render/nodelink
package render
