package asyncrt

import (
	"testing"
	"time"
)

func TestFakeTimerHostFiresInDueOrder(t *testing.T) {
	host := NewFakeTimerHost()
	var order []string

	host.SetTimeout(func() { order = append(order, "late") }, 300*time.Millisecond)
	host.SetTimeout(func() { order = append(order, "early") }, 100*time.Millisecond)
	host.SetTimeout(func() { order = append(order, "mid") }, 200*time.Millisecond)

	host.Advance(300 * time.Millisecond)

	want := []string{"early", "mid", "late"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestFakeTimerHostClearTimeoutPreventsFiring(t *testing.T) {
	host := NewFakeTimerHost()
	fired := false
	id := host.SetTimeout(func() { fired = true }, 100*time.Millisecond)
	host.ClearTimeout(id)
	host.Advance(200 * time.Millisecond)
	if fired {
		t.Fatal("cleared timer fired")
	}
}

func TestFakeTimerHostCascadingImmediates(t *testing.T) {
	host := NewFakeTimerHost()
	var count int
	var schedule func()
	schedule = func() {
		count++
		if count < 3 {
			host.SetImmediate(schedule)
		}
	}
	host.SetImmediate(schedule)
	host.Advance(0)
	assertEqual(t, count, 3)
}

func TestFakeTimerHostPendingCount(t *testing.T) {
	host := NewFakeTimerHost()
	assertEqual(t, host.PendingCount(), 0)
	id := host.SetTimeout(func() {}, time.Second)
	assertEqual(t, host.PendingCount(), 1)
	host.ClearTimeout(id)
	assertEqual(t, host.PendingCount(), 0)
}
