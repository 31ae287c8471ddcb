package types

// WalkResult tells Walk whether to keep going.
type WalkResult int

const (
	// WalkContinue moves on to the next package
	WalkContinue WalkResult = iota
	// WalkStop ends the walk successfully
	WalkStop
	// WalkError ends the walk with a failure
	WalkError
)

// String returns a lower-case name for logs.
func (r WalkResult) String() string {
	switch r {
	case WalkContinue:
		return "continue"
	case WalkStop:
		return "stop"
	case WalkError:
		return "error"
	default:
		return "unknown"
	}
}

// Visitor is called once per active package in manifest order.
type Visitor func(pkg *Package) (WalkResult, error)
