package scorched

// LifetimeStats aggregates round counters across a run. The storage layer
// persists them per run and rolls them up into all-time totals.
type LifetimeStats struct {
	RoundsWon    int
	BestRound    int
	ShotsFired   int
	HitsOnEnemy  int
	DirectHits   int
	DamageDealt  float64
	DamageTaken  float64
	SelfHits     int
	TokensEarned int
}

// Accuracy returns hits per shot in [0, 1].
func (s LifetimeStats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.HitsOnEnemy) / float64(s.ShotsFired)
}

// absorb folds one round's counters into the lifetime totals.
func (s *LifetimeStats) absorb(c RoundCounters) {
	s.ShotsFired += c.ShotsFired
	s.HitsOnEnemy += c.HitsOnEnemy
	s.DirectHits += c.DirectHits
	s.DamageDealt += c.DamageDealt
	s.DamageTaken += c.DamageTaken
	s.SelfHits += c.SelfHits
}
