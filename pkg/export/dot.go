package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// statusFill maps completion statuses to Graphviz fill colors, roughly
// matching the web renderer's palette.
var statusFill = map[prereq.Status]string{
	prereq.StatusCompleted:  "palegreen",
	prereq.StatusInProgress: "lightskyblue",
	prereq.StatusPlanned:    "khaki",
	prereq.StatusFailed:     "lightcoral",
	prereq.StatusAvailable:  "white",
	prereq.StatusLocked:     "lightgrey",
}

// ToDOT converts a positioned graph to Graphviz DOT. Node fills encode
// status, connectors render as small diamonds, and the target course gets
// a heavy border. The resulting string can be rendered with [RenderSVG]
// or [RenderPNG].
func ToDOT(res *layout.Result, direction layout.Direction) string {
	var buf bytes.Buffer
	buf.WriteString("digraph prerequisites {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range res.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range res.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(d layout.Direction) string {
	if d.IsValid() {
		return string(d)
	}
	return string(layout.DirectionLR)
}

func nodeAttrs(n layout.PositionedNode) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.Label())}

	if fill, ok := statusFill[n.Status]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", fill))
	}
	if n.IsLogicNode() {
		attrs = append(attrs, "shape=diamond", "fontsize=10")
	}
	if n.IsTarget {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
