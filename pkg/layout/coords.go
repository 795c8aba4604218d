package layout

import "github.com/courseflow/courseflow/pkg/dag"

type point struct {
	x, y float64
}

// assignCoordinates places node centers. Ranks advance along the primary
// axis separated by RankSeparation; within a rank, nodes follow the
// computed order separated by NodeSeparation. Each rank is as thick as its
// thickest node, and nodes are centered on the rank line. BT and RL simply
// walk the ranks in reverse so the flow points the other way.
func assignCoordinates(g *dag.DAG, orders map[int][]string, cfg Config) map[string]point {
	rankIDs := g.RankIDs()
	centers := make(map[string]point, g.NodeCount())
	if len(rankIDs) == 0 {
		return centers
	}

	horizontal := cfg.Direction.horizontal()

	// Thickness of a rank is the largest extent along the primary axis.
	thickness := make(map[int]float64, len(rankIDs))
	for _, rank := range rankIDs {
		var max float64
		for _, n := range g.NodesInRank(rank) {
			extent := n.H
			if horizontal {
				extent = n.W
			}
			if extent > max {
				max = extent
			}
		}
		thickness[rank] = max
	}

	walk := rankIDs
	if cfg.Direction == DirectionBT || cfg.Direction == DirectionRL {
		walk = reversed(rankIDs)
	}

	primary := primaryMargin(cfg)
	for _, rank := range walk {
		rankCenter := primary + thickness[rank]/2

		cursor := secondaryMargin(cfg)
		for _, id := range orders[rank] {
			n, ok := g.Node(id)
			if !ok {
				continue
			}
			extent := n.W
			if horizontal {
				extent = n.H
			}
			center := cursor + extent/2
			if horizontal {
				centers[id] = point{x: rankCenter, y: center}
			} else {
				centers[id] = point{x: center, y: rankCenter}
			}
			cursor += extent + cfg.NodeSeparation
		}

		primary += thickness[rank] + cfg.RankSeparation
	}
	return centers
}

func primaryMargin(cfg Config) float64 {
	if cfg.Direction.horizontal() {
		return cfg.MarginX
	}
	return cfg.MarginY
}

func secondaryMargin(cfg Config) float64 {
	if cfg.Direction.horizontal() {
		return cfg.MarginY
	}
	return cfg.MarginX
}

func reversed(ranks []int) []int {
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[len(ranks)-1-i] = r
	}
	return out
}
