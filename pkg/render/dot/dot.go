package dot

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/timing"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the data tags of Tags to each node label.
	Detailed bool

	// Tags supplies the tags shown when Detailed is set. Usually the setup view.
	Tags timing.TagView

	// DomainName resolves domain ids in tag lines. Ids are printed when nil.
	DomainName func(timing.DomainID) string
}

var shapes = map[timing.NodeType]string{
	timing.NodeSource: `shape=invhouse`,
	timing.NodeSink:   `shape=house`,
	timing.NodeIPin:   `shape=box`,
	timing.NodeOPin:   `shape=box, style="rounded"`,
	timing.NodeCPin:   `shape=diamond`,
}

// ToDOT converts a timing graph to Graphviz DOT format.
func ToDOT(g dump.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph timing {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"Helvetica\", fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("\n")

	for i := 0; i < g.NodeCount(); i++ {
		n := timing.NodeID(i)
		typ := g.NodeType(n)
		attrs := []string{fmt.Sprintf("label=%q", label(n, typ, opts))}
		if shape, ok := shapes[typ]; ok {
			attrs = append(attrs, shape)
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", n, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 0; i < g.EdgeCount(); i++ {
		e := timing.EdgeID(i)
		src, sink := g.EdgeSrcNode(e), g.EdgeSinkNode(e)
		if !src.Valid() || !sink.Valid() {
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [label=\"e%d\"];\n", src, sink, e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(n timing.NodeID, typ timing.NodeType, opts Options) string {
	l := fmt.Sprintf("%d %s", n, typ)
	if !opts.Detailed || opts.Tags == nil {
		return l
	}

	tags := slices.SortedFunc(slices.Values(opts.Tags.DataTags(n)), func(a, b timing.Tag) int {
		return cmp.Compare(a.Domain, b.Domain)
	})
	for _, t := range tags {
		name := t.Domain.String()
		if opts.DomainName != nil {
			name = opts.DomainName(t.Domain)
		}
		l += fmt.Sprintf("\n%s %s/%s", name, t.Arrival, t.Required)
	}
	return l
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg tag with one whose viewBox starts
// at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
