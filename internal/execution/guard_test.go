package execution

import "testing"

func TestGuard(t *testing.T) {
	t.Run("acquire and release", func(t *testing.T) {
		g := NewGuard()
		if g.Active() {
			t.Fatal("new guard must start released")
		}
		if !g.TryAcquire() {
			t.Fatal("first acquire must succeed")
		}
		if !g.Active() {
			t.Error("guard must be active after acquire")
		}
		g.Release()
		if g.Active() {
			t.Error("guard must be released after release")
		}
	})

	t.Run("second acquire is rejected without side effects", func(t *testing.T) {
		g := NewGuard()
		g.TryAcquire()
		if g.TryAcquire() {
			t.Fatal("second acquire must fail while active")
		}
		if !g.Active() {
			t.Error("rejected acquire must leave the flag set")
		}
	})

	t.Run("reacquire after release", func(t *testing.T) {
		g := NewGuard()
		g.TryAcquire()
		g.Release()
		if !g.TryAcquire() {
			t.Error("acquire must succeed after release")
		}
	})
}
