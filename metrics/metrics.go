// Package metrics exposes observability hooks fired by the facade.
package metrics

// Op names a bounded-retry site that can run out of attempts.
type Op string

const (
	OpPushLock  Op = "push_lock"  // push waiting for a trim to release the list lock
	OpIndexIncr Op = "index_incr" // push allocating a slot number
)

// Metrics receives facade events. Implementations must be safe for concurrent use
// and cheap, hooks run inline with cache operations.
type Metrics interface {
	Hit()
	Miss()
	StaleEvicted()
	Scheduled()
	LockSpin()
	Exhausted(op Op)
	Pushed()
	PushFailed()
	Trimmed(slots int)
}

// Noop is the default Metrics.
type Noop struct{}

func (Noop) Hit()          {}
func (Noop) Miss()         {}
func (Noop) StaleEvicted() {}
func (Noop) Scheduled()    {}
func (Noop) LockSpin()     {}
func (Noop) Exhausted(Op)  {}
func (Noop) Pushed()       {}
func (Noop) PushFailed()   {}
func (Noop) Trimmed(int)   {}

// Multi fans every event out to all of its members in order.
type Multi []Metrics

func (m Multi) Hit() {
	for _, x := range m {
		x.Hit()
	}
}

func (m Multi) Miss() {
	for _, x := range m {
		x.Miss()
	}
}

func (m Multi) StaleEvicted() {
	for _, x := range m {
		x.StaleEvicted()
	}
}

func (m Multi) Scheduled() {
	for _, x := range m {
		x.Scheduled()
	}
}

func (m Multi) LockSpin() {
	for _, x := range m {
		x.LockSpin()
	}
}

func (m Multi) Exhausted(op Op) {
	for _, x := range m {
		x.Exhausted(op)
	}
}

func (m Multi) Pushed() {
	for _, x := range m {
		x.Pushed()
	}
}

func (m Multi) PushFailed() {
	for _, x := range m {
		x.PushFailed()
	}
}

func (m Multi) Trimmed(slots int) {
	for _, x := range m {
		x.Trimmed(slots)
	}
}

var (
	_ Metrics = Noop{}
	_ Metrics = Multi(nil)
)
