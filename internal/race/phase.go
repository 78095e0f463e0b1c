package race

// Phase identifies one of the ten fixed points within a turn at which
// skills may trigger. Phases run exactly once per turn, in declaration
// order. The resolver owns the engine work attached to PhaseRoll,
// PhaseMove and PhaseAdjudicate; every other phase exists purely for
// skill dispatch.
type Phase int

const (
	PhasePreTurn     Phase = iota // expiring temporary effects
	PhasePreRoll                  // adjust the dice distribution before rolling
	PhaseRoll                     // base movement is drawn; skills may override the draw
	PhasePostRoll                 // adjust the rolled value before movement
	PhaseMove                     // movement applied in roster order
	PhaseStacking                 // react to co-located competitors
	PhaseCollision                // displacement effects
	PhaseFinishCheck              // "about to finish" triggers
	PhaseAdjudicate               // terminal check: any position >= board length
	PhasePostTurn                 // counters decremented, one-shot flags cleared
)

// numPhases is the size of the phase enumeration.
const numPhases = int(PhasePostTurn) + 1

var phaseNames = [numPhases]string{
	"pre-turn",
	"pre-roll",
	"roll",
	"post-roll",
	"move",
	"stacking",
	"collision",
	"finish-check",
	"adjudicate",
	"post-turn",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Valid reports whether p is one of the ten defined phases.
func (p Phase) Valid() bool {
	return p >= PhasePreTurn && int(p) < numPhases
}

// Phases returns the ten phases in turn order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}
