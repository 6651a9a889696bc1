package generator

// State is the phase a Generator is in.
type State int

const (
	Initializing   State = iota // Randomizing and range folding
	PostProcessing              // Initial smoothing and first evolution
	Evolving                    // Main loop rounds
	Settled                     // Continuity heuristic satisfied
	Aborted                     // Stopped by the generation cap or cancellation
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case PostProcessing:
		return "post-processing"
	case Evolving:
		return "evolving"
	case Settled:
		return "settled"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Done reports whether no more rounds will run.
func (s State) Done() bool {
	return s == Settled || s == Aborted
}
