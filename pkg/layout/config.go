package layout

import "github.com/courseflow/courseflow/pkg/errors"

// Direction controls the axis along which ranks are laid out.
type Direction string

const (
	// DirectionTB places rank 0 at the top, flowing downward.
	DirectionTB Direction = "TB"
	// DirectionBT places rank 0 at the bottom, flowing upward.
	DirectionBT Direction = "BT"
	// DirectionLR places rank 0 at the left, flowing rightward.
	DirectionLR Direction = "LR"
	// DirectionRL places rank 0 at the right, flowing leftward.
	DirectionRL Direction = "RL"
)

// IsValid reports whether the direction is one of the four supported values.
func (d Direction) IsValid() bool {
	switch d {
	case DirectionTB, DirectionBT, DirectionLR, DirectionRL:
		return true
	}
	return false
}

// horizontal reports whether ranks advance along the x axis.
func (d Direction) horizontal() bool {
	return d == DirectionLR || d == DirectionRL
}

// Default separation and padding values, in pixels.
const (
	DefaultNodeSeparation = 50.0
	DefaultRankSeparation = 100.0
	DefaultMarginX        = 40.0
	DefaultMarginY        = 40.0
	DefaultOrderingPasses = 8
)

// Config tunes the layout engine. The zero value is not usable directly;
// call ValidateAndSetDefaults or start from DefaultConfig.
type Config struct {
	// Direction is the rank axis. Defaults to left-to-right.
	Direction Direction
	// NodeSeparation is the gap between adjacent nodes within a rank.
	NodeSeparation float64
	// RankSeparation is the gap between consecutive ranks.
	RankSeparation float64
	// MarginX and MarginY pad the whole drawing.
	MarginX, MarginY float64
	// OrderingPasses bounds the barycenter refinement sweeps.
	OrderingPasses int
}

// DefaultConfig returns the standard tuning: left-to-right flow with
// moderate separations.
func DefaultConfig() Config {
	return Config{
		Direction:      DirectionLR,
		NodeSeparation: DefaultNodeSeparation,
		RankSeparation: DefaultRankSeparation,
		MarginX:        DefaultMarginX,
		MarginY:        DefaultMarginY,
		OrderingPasses: DefaultOrderingPasses,
	}
}

// ValidateAndSetDefaults fills zero-valued fields with defaults and rejects
// values the engine cannot work with. An empty Direction becomes
// left-to-right; any other unrecognized direction is an error.
func (c *Config) ValidateAndSetDefaults() error {
	if c.Direction == "" {
		c.Direction = DirectionLR
	}
	if !c.Direction.IsValid() {
		return errors.New(errors.ErrCodeInvalidDirection, "unsupported layout direction: %q", c.Direction)
	}
	if c.NodeSeparation <= 0 {
		c.NodeSeparation = DefaultNodeSeparation
	}
	if c.RankSeparation <= 0 {
		c.RankSeparation = DefaultRankSeparation
	}
	if c.MarginX < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "marginX must be non-negative, got %v", c.MarginX)
	}
	if c.MarginY < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "marginY must be non-negative, got %v", c.MarginY)
	}
	if c.MarginX == 0 {
		c.MarginX = DefaultMarginX
	}
	if c.MarginY == 0 {
		c.MarginY = DefaultMarginY
	}
	if c.OrderingPasses <= 0 {
		c.OrderingPasses = DefaultOrderingPasses
	}
	return nil
}
