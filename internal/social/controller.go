// Package social implements the optimistic-interaction state machine behind
// the follow, like and repost buttons: flip the local state immediately,
// run the mutation, keep the flip on success and roll it back on failure.
package social

// Kind identifies the toggle an entity widget owns a controller for
type Kind int

const (
	KindFollow Kind = iota
	KindLike
	KindRepost
)

// Toggleable reports whether the action has a deactivate path.
// Reposts cannot be undone.
func (k Kind) Toggleable() bool { return k != KindRepost }

// Decision is the outcome of a trigger attempt
type Decision int

const (
	// DecisionIgnore means the trigger was refused: a mutation is already
	// pending, or the action is in its terminal one-shot state.
	DecisionIgnore Decision = iota

	// DecisionAuthRequired means the caller must run the login flow and may
	// retry the trigger once after it succeeds. State is unchanged.
	DecisionAuthRequired

	// DecisionStart means the optimistic flip has been applied and the
	// caller must execute the mutation, then report Resolve or Fail.
	DecisionStart
)

// Controller owns the optimistic state for one (entity, action) pair.
// The effective value shown to the user is the local override when set,
// otherwise the entity's last-known server-reported value. Not safe for
// concurrent use; lives inside a component model.
type Controller struct {
	kind     Kind
	entityID string

	override *bool // nil defers to the server-reported value
	pending  bool
	done     bool // terminal state for one-shot actions
	prev     bool // effective value before the in-flight trigger
	delta    int  // counter projection applied by in-flight/kept flips
}

// NewController creates a controller for one action kind
func NewController(kind Kind) *Controller {
	return &Controller{kind: kind}
}

// Bind points the controller at an entity. A change of identity discards
// all local state; binding the same identity again is a no-op.
func (c *Controller) Bind(entityID string) {
	if c.entityID == entityID {
		return
	}
	c.entityID = entityID
	c.override = nil
	c.pending = false
	c.done = false
	c.delta = 0
}

// Effective returns the value to display: the local override when set,
// else the server-reported baseline.
func (c *Controller) Effective(server bool) bool {
	if c.override != nil {
		return *c.override
	}
	return server
}

// Pending reports whether a mutation is outstanding
func (c *Controller) Pending() bool { return c.pending }

// CounterDelta is the ±1 projection to add to the server-reported counter
// (follower count, like count) so the optimistic flip is visible there too.
func (c *Controller) CounterDelta() int { return c.delta }

// Trigger attempts the action. server is the entity's server-reported
// state; authenticated is the session state at the moment of the trigger.
// On DecisionStart the optimistic flip has already been applied and target
// is the state the mutation must establish (true = activate).
func (c *Controller) Trigger(server, authenticated bool) (target bool, d Decision) {
	if c.pending || c.done {
		return false, DecisionIgnore
	}
	effective := c.Effective(server)
	if c.kind == KindRepost && effective {
		// No un-repost path; an already-active repost is terminal.
		c.done = true
		return false, DecisionIgnore
	}
	if !authenticated {
		return false, DecisionAuthRequired
	}

	target = !effective
	c.prev = effective
	v := target
	c.override = &v
	c.pending = true
	if target {
		c.delta++
	} else {
		c.delta--
	}
	return target, DecisionStart
}

// Resolve records a successful mutation: the optimistic value stays
// authoritative until fresh server data arrives. One-shot actions enter
// their terminal state.
func (c *Controller) Resolve() {
	if !c.pending {
		return
	}
	c.pending = false
	if c.kind == KindRepost && c.override != nil && *c.override {
		c.done = true
	}
}

// Fail rolls back the in-flight flip: the effective value and the counter
// projection return to their pre-trigger state.
func (c *Controller) Fail() {
	if !c.pending {
		return
	}
	c.pending = false
	if c.override != nil && *c.override {
		c.delta--
	} else {
		c.delta++
	}
	v := c.prev
	c.override = &v
}

// Rebase clears the local override because fresh server-reported data has
// superseded it. Never called speculatively; only on an entity reload.
func (c *Controller) Rebase(server bool) {
	if c.pending {
		return
	}
	c.override = nil
	c.delta = 0
	c.done = c.kind == KindRepost && server
}
