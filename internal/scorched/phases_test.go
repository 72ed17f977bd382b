package scorched

import "testing"

func TestPhaseEdges(t *testing.T) {
	cases := []struct {
		from, to Phase
		ok       bool
	}{
		{PhasePlayerAim, PhasePlayerFire, true},
		{PhasePlayerFire, PhaseProjectileFlight, true},
		{PhaseProjectileFlight, PhasePlayerAim, true},
		{PhaseProjectileFlight, PhaseAIAim, true},
		{PhaseProjectileFlight, PhaseRoundResolved, true},
		{PhaseAIAim, PhaseAIFire, true},
		{PhaseAIFire, PhaseProjectileFlight, true},

		{PhasePlayerAim, PhaseProjectileFlight, false},
		{PhasePlayerAim, PhaseAIAim, false},
		{PhasePlayerFire, PhasePlayerAim, false},
		{PhaseAIAim, PhasePlayerFire, false},
		{PhaseRoundResolved, PhasePlayerAim, false},
		{PhaseRoundResolved, PhaseRoundResolved, false},
	}
	for _, tc := range cases {
		if got := phaseEdgeAllowed(tc.from, tc.to); got != tc.ok {
			t.Errorf("%s -> %s: allowed=%v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestPhasesForShooter(t *testing.T) {
	if aimPhaseFor(TeamPlayer) != PhasePlayerAim || aimPhaseFor(TeamEnemy) != PhaseAIAim {
		t.Error("aimPhaseFor mapping wrong")
	}
	if firePhaseFor(TeamPlayer) != PhasePlayerFire || firePhaseFor(TeamEnemy) != PhaseAIFire {
		t.Error("firePhaseFor mapping wrong")
	}
}
