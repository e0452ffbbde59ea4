package scene

// Algorithm selects the CSG rendering algorithm
type Algorithm int

const (
	AlgorithmAuto Algorithm = iota
	AlgorithmGoldfeather
	AlgorithmSCS
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmGoldfeather:
		return "Goldfeather"
	case AlgorithmSCS:
		return "SCS"
	default:
		return "Auto"
	}
}

// DepthAlgorithm selects the depth complexity strategy. It only takes
// effect for explicitly chosen algorithms, never for Auto.
type DepthAlgorithm int

const (
	DepthOff DepthAlgorithm = iota
	DepthOcclusionQuery
	DepthOn
)

func (d DepthAlgorithm) String() string {
	switch d {
	case DepthOcclusionQuery:
		return "OcclusionQuery"
	case DepthOn:
		return "On"
	default:
		return "Off"
	}
}

// Optimization selects the renderer optimization level
type Optimization int

const (
	OptimizationDefault Optimization = iota
	OptimizationForceOn
	OptimizationOn
	OptimizationOff
)

func (o Optimization) String() string {
	switch o {
	case OptimizationForceOn:
		return "ForceOn"
	case OptimizationOn:
		return "On"
	case OptimizationOff:
		return "Off"
	default:
		return "Default"
	}
}

// DefaultConvexity is the initial convexity of fresh settings
const DefaultConvexity = 10

// CSGSettings carries the CSG rendering parameters as a single value.
// Consumers read a full copy from the display, modify it and apply it back
// wholesale, so a display never observes a partially updated state.
type CSGSettings struct {
	enabled   bool
	algorithm Algorithm
	depth     DepthAlgorithm
	opt       Optimization
	convexity uint
}

// NewCSGSettings returns settings with CSG enabled and default parameters
func NewCSGSettings() CSGSettings {
	return CSGSettings{
		enabled:   true,
		convexity: DefaultConvexity,
	}
}

// EnableCSG switches CSG rendering on or off
func (s *CSGSettings) EnableCSG(on bool) {
	s.enabled = on
}

// SetAlgorithm replaces the CSG algorithm
func (s *CSGSettings) SetAlgorithm(a Algorithm) {
	s.algorithm = a
}

// SetDepthAlgorithm replaces the depth complexity strategy
func (s *CSGSettings) SetDepthAlgorithm(d DepthAlgorithm) {
	s.depth = d
}

// SetOptimization replaces the optimization level
func (s *CSGSettings) SetOptimization(o Optimization) {
	s.opt = o
}

// SetConvexity replaces the convexity. Zero is not a valid convexity; the
// call is ignored and the previous value kept.
func (s *CSGSettings) SetConvexity(c uint) {
	if c == 0 {
		return
	}
	s.convexity = c
}

func (s CSGSettings) Enabled() bool { return s.enabled }

func (s CSGSettings) Algorithm() Algorithm { return s.algorithm }

func (s CSGSettings) DepthAlgorithm() DepthAlgorithm { return s.depth }

func (s CSGSettings) Optimization() Optimization { return s.opt }

func (s CSGSettings) Convexity() uint { return s.convexity }
