package social

import "testing"

func TestTriggerOptimisticSuccess(t *testing.T) {
	c := NewController(KindLike)
	c.Bind("post-1")

	target, d := c.Trigger(false, true)
	if d != DecisionStart {
		t.Fatalf("decision = %v, want DecisionStart", d)
	}
	if !target {
		t.Error("target = false, want activate")
	}
	if !c.Effective(false) {
		t.Error("effective state not flipped optimistically")
	}
	if c.CounterDelta() != 1 {
		t.Errorf("CounterDelta() = %d, want 1", c.CounterDelta())
	}
	if !c.Pending() {
		t.Error("Pending() = false during mutation")
	}

	c.Resolve()
	if !c.Effective(false) {
		t.Error("effective state reverted after success")
	}
	if c.Pending() {
		t.Error("Pending() = true after Resolve")
	}
	if c.CounterDelta() != 1 {
		t.Errorf("CounterDelta() = %d after success, want 1", c.CounterDelta())
	}
}

func TestTriggerOptimisticRollback(t *testing.T) {
	c := NewController(KindLike)
	c.Bind("post-1")

	c.Trigger(false, true)
	c.Fail()

	if c.Effective(false) {
		t.Error("effective state not rolled back after failure")
	}
	if c.Pending() {
		t.Error("Pending() = true after Fail")
	}
	if c.CounterDelta() != 0 {
		t.Errorf("CounterDelta() = %d after rollback, want 0", c.CounterDelta())
	}
}

func TestDeactivateRollback(t *testing.T) {
	c := NewController(KindFollow)
	c.Bind("acct-1")

	// Server says already following; trigger means unfollow.
	target, d := c.Trigger(true, true)
	if d != DecisionStart || target {
		t.Fatalf("trigger = (%v, %v), want deactivate start", target, d)
	}
	if c.Effective(true) {
		t.Error("effective state still active after optimistic unfollow")
	}
	if c.CounterDelta() != -1 {
		t.Errorf("CounterDelta() = %d, want -1", c.CounterDelta())
	}

	c.Fail()
	if !c.Effective(true) {
		t.Error("effective state not restored after failed unfollow")
	}
	if c.CounterDelta() != 0 {
		t.Errorf("CounterDelta() = %d after rollback, want 0", c.CounterDelta())
	}
}

func TestReentrantTriggerIgnored(t *testing.T) {
	c := NewController(KindFollow)
	c.Bind("acct-1")

	c.Trigger(false, true)
	if _, d := c.Trigger(false, true); d != DecisionIgnore {
		t.Errorf("re-entrant trigger decision = %v, want DecisionIgnore", d)
	}
	if c.CounterDelta() != 1 {
		t.Errorf("re-entrant trigger changed state: delta = %d", c.CounterDelta())
	}
}

func TestRepostIsOneShot(t *testing.T) {
	c := NewController(KindRepost)
	c.Bind("post-1")

	if _, d := c.Trigger(false, true); d != DecisionStart {
		t.Fatalf("first repost decision = %v", d)
	}
	c.Resolve()

	if _, d := c.Trigger(false, true); d != DecisionIgnore {
		t.Errorf("repost re-trigger decision = %v, want DecisionIgnore", d)
	}
}

func TestRepostRefusedWhenServerAlreadyActive(t *testing.T) {
	c := NewController(KindRepost)
	c.Bind("post-1")

	if _, d := c.Trigger(true, true); d != DecisionIgnore {
		t.Errorf("repost of already-reposted post decision = %v, want DecisionIgnore", d)
	}
}

func TestUnauthenticatedTriggerDeferred(t *testing.T) {
	c := NewController(KindLike)
	c.Bind("post-1")

	_, d := c.Trigger(false, false)
	if d != DecisionAuthRequired {
		t.Fatalf("decision = %v, want DecisionAuthRequired", d)
	}
	if c.Effective(false) {
		t.Error("state changed by unauthenticated trigger")
	}
	if c.Pending() {
		t.Error("Pending() = true after refused trigger")
	}

	// Retried once after login succeeds.
	if _, d := c.Trigger(false, true); d != DecisionStart {
		t.Errorf("post-login retry decision = %v, want DecisionStart", d)
	}
}

func TestBindResetsOnIdentityChange(t *testing.T) {
	c := NewController(KindLike)
	c.Bind("post-1")
	c.Trigger(false, true)
	c.Resolve()

	c.Bind("post-2")
	if c.Effective(false) {
		t.Error("override survived an entity identity change")
	}
	if c.CounterDelta() != 0 {
		t.Errorf("CounterDelta() = %d after rebind, want 0", c.CounterDelta())
	}

	c.Trigger(false, true)
	c.Bind("post-2") // same identity: no-op
	if !c.Pending() {
		t.Error("rebinding the same identity reset pending state")
	}
}

func TestRebaseClearsOverride(t *testing.T) {
	c := NewController(KindFollow)
	c.Bind("acct-1")
	c.Trigger(false, true)
	c.Resolve()

	if !c.Effective(false) {
		t.Fatal("override not in effect")
	}

	// Fresh server data now reports the follow; the override retires.
	c.Rebase(true)
	if !c.Effective(true) {
		t.Error("effective state wrong after rebase")
	}
	if c.CounterDelta() != 0 {
		t.Errorf("CounterDelta() = %d after rebase, want 0", c.CounterDelta())
	}

	// And a trigger now toggles off the server value.
	target, d := c.Trigger(true, true)
	if d != DecisionStart || target {
		t.Errorf("post-rebase trigger = (%v, %v), want deactivate start", target, d)
	}
}
