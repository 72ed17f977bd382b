package scorched

import "errors"

// Command rejection sentinels. The core never panics across Step; illegal
// input is reported through these and the simulation keeps going.
var (
	// ErrInvalidArgument marks out-of-range or malformed command input.
	ErrInvalidArgument = errors.New("scorched: invalid argument")

	// ErrUnknownWeapon marks a weapon id absent from the arsenal.
	ErrUnknownWeapon = errors.New("scorched: unknown weapon")

	// ErrNoAmmo marks a fire or weapon switch with an empty inventory slot.
	ErrNoAmmo = errors.New("scorched: no ammo")

	// ErrIllegalPhase marks a command issued outside its allowed phase.
	ErrIllegalPhase = errors.New("scorched: illegal phase")

	// ErrRunOver marks a command issued after the run reached GAME_OVER.
	ErrRunOver = errors.New("scorched: run is over")
)
