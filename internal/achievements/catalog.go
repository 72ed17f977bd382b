// Package achievements turns core game events into persistent unlocks.
// A Tracker subscribes to the run's event bus and records progress in storage.
package achievements

// Achievement describes one unlockable.
type Achievement struct {
	ID          string
	Title       string
	Description string
}

// Achievement IDs. Stable, stored in the database.
const (
	FirstWin     = "first_win"
	Survivor5    = "survivor_5"
	Survivor10   = "survivor_10"
	DirectHit    = "direct_hit"
	Untouchable  = "untouchable"
	GoingNuclear = "going_nuclear"
	SplitShot    = "split_shot"
	OwnGoal      = "own_goal"
)

// Catalog returns every achievement, in display order.
func Catalog() []Achievement {
	return []Achievement{
		{FirstWin, "First Blood", "Win your first round"},
		{Survivor5, "Survivor", "Reach round 5 in one run"},
		{Survivor10, "Veteran", "Reach round 10 in one run"},
		{DirectHit, "Bullseye", "Land a direct hit"},
		{Untouchable, "Untouchable", "Win a round without taking damage"},
		{GoingNuclear, "Going Nuclear", "Fire a nuclear weapon"},
		{SplitShot, "Cluster Bomber", "Split a shell mid-flight"},
		{OwnGoal, "Own Goal", "Destroy your own tank"},
	}
}

// ByID returns the catalog entry for an ID, if it exists.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog() {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
