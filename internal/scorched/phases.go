package scorched

// Phase is the turn-machine state. Input gating hangs off it: player commands
// are accepted only in PhasePlayerAim, AI decisions only apply in PhaseAIAim.
type Phase int

const (
	PhasePlayerAim Phase = iota
	PhasePlayerFire
	PhaseProjectileFlight
	PhaseAIAim
	PhaseAIFire
	PhaseRoundResolved
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlayerAim:
		return "PLAYER_AIM"
	case PhasePlayerFire:
		return "PLAYER_FIRE"
	case PhaseProjectileFlight:
		return "PROJECTILE_FLIGHT"
	case PhaseAIAim:
		return "AI_AIM"
	case PhaseAIFire:
		return "AI_FIRE"
	case PhaseRoundResolved:
		return "ROUND_RESOLVED"
	default:
		return "UNKNOWN"
	}
}

// Outcome classifies a resolved round.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// phaseEdges is the allowed transition graph. Flight returns to either aim
// state depending on the next shooter, or resolves the round.
var phaseEdges = map[Phase][]Phase{
	PhasePlayerAim:        {PhasePlayerFire},
	PhasePlayerFire:       {PhaseProjectileFlight},
	PhaseProjectileFlight: {PhasePlayerAim, PhaseAIAim, PhaseRoundResolved},
	PhaseAIAim:            {PhaseAIFire},
	PhaseAIFire:           {PhaseProjectileFlight},
	PhaseRoundResolved:    {},
}

// phaseEdgeAllowed reports whether from→to is in the graph.
func phaseEdgeAllowed(from, to Phase) bool {
	for _, next := range phaseEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// aimPhaseFor returns the aim phase belonging to a shooter.
func aimPhaseFor(shooter Team) Phase {
	if shooter == TeamPlayer {
		return PhasePlayerAim
	}
	return PhaseAIAim
}

// firePhaseFor returns the fire phase belonging to a shooter.
func firePhaseFor(shooter Team) Phase {
	if shooter == TeamPlayer {
		return PhasePlayerFire
	}
	return PhaseAIFire
}
