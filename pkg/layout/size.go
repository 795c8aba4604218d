package layout

import (
	"github.com/courseflow/courseflow/pkg/prereq"
)

// Node footprints, in pixels. Course and leaf nodes get a card-sized box;
// AND/OR connectors get a compact badge. Width grows with the label past a
// character threshold so long course codes stay readable, capped so a
// single node cannot dominate the drawing. Height has two tiers: the base
// card and a taller one for courses with long titles.
const (
	courseBaseWidth  = 180.0
	courseBaseHeight = 72.0
	logicWidth       = 56.0
	logicHeight      = 40.0

	labelGrowThreshold = 20
	widthPerExtraChar  = 2.4
	maxNodeWidth       = 320.0

	tallTitleThreshold = 36
	tallTierExtra      = 24.0
)

// NodeSize returns the footprint for a canonical node. It is a pure
// function of the node, so sizing never perturbs layout determinism.
func NodeSize(n prereq.Node) (width, height float64) {
	if n.Kind.IsLogic() {
		return logicWidth, logicHeight
	}

	width = courseBaseWidth
	if extra := len(n.Label()) - labelGrowThreshold; extra > 0 {
		width += float64(extra) * widthPerExtraChar
		if width > maxNodeWidth {
			width = maxNodeWidth
		}
	}

	height = courseBaseHeight
	if n.Meta != nil && len(n.Meta.Title) > tallTitleThreshold {
		height += tallTierExtra
	}
	return width, height
}
