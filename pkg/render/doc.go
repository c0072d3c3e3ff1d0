// Package render converts rendered timing-graph diagrams between formats.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Diagram generation itself
// lives in the [dot] subpackage.
//
//	svg, err := dot.RenderSVG(ctx, dot.ToDOT(g, dot.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [dot]: github.com/matzehuels/stadump/pkg/render/dot
package render
