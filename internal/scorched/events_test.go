package scorched

import "testing"

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus(nil)

	var got []int
	bus.Subscribe(func(Event) { got = append(got, 1) })
	bus.Subscribe(func(Event) { got = append(got, 2) })
	bus.Subscribe(func(Event) { got = append(got, 3) })

	bus.Emit(RoundStart{Round: 1})

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("delivery order = %v, want [1 2 3]", got)
	}
}

func TestBusDisposer(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	dispose := bus.Subscribe(func(Event) { calls++ })

	bus.Emit(RoundStart{Round: 1})
	dispose()
	bus.Emit(RoundStart{Round: 2})

	if calls != 1 {
		t.Errorf("calls = %d, want 1 after disposal", calls)
	}

	// Disposing twice is harmless.
	dispose()
	bus.Emit(RoundStart{Round: 3})
	if calls != 1 {
		t.Errorf("calls = %d after double dispose", calls)
	}
}

func TestBusDisposerDuringEmit(t *testing.T) {
	bus := NewBus(nil)

	var got []int
	var disposeFirst func()
	disposeFirst = bus.Subscribe(func(Event) {
		got = append(got, 1)
		disposeFirst()
	})
	bus.Subscribe(func(Event) { got = append(got, 2) })

	// The one-shot subscriber must not knock its neighbor out of this delivery.
	bus.Emit(RoundStart{Round: 1})
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("delivery = %v, want [1 2]", got)
	}

	bus.Emit(RoundStart{Round: 2})
	if len(got) != 3 || got[2] != 2 {
		t.Errorf("delivery after disposal = %v, want [1 2 2]", got)
	}
}

func TestBusIsolatesPanickingSubscriber(t *testing.T) {
	bus := NewBus(nil)

	var survived bool
	bus.Subscribe(func(Event) { panic("listener bug") })
	bus.Subscribe(func(Event) { survived = true })

	bus.Emit(ShotFired{Team: TeamPlayer})

	if !survived {
		t.Error("subscriber after the panicking one was not invoked")
	}
}

func TestBusEventPayloads(t *testing.T) {
	bus := NewBus(nil)

	var got Event
	bus.Subscribe(func(ev Event) { got = ev })

	bus.Emit(DamageDealt{Actual: 30, Direct: true, TargetTeam: TeamEnemy, WeaponID: WeaponMissile})

	dd, ok := got.(DamageDealt)
	if !ok {
		t.Fatalf("got %T, want DamageDealt", got)
	}
	if dd.Actual != 30 || !dd.Direct || dd.TargetTeam != TeamEnemy || dd.WeaponID != WeaponMissile {
		t.Errorf("payload mismatch: %+v", dd)
	}
}
