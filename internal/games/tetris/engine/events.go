package engine

// Listener receives fire-and-forget notifications from a session.
// Implementations must return quickly and must not call back into the session.
type Listener interface {
	OnLock()
	OnLineClear(count int)
	OnLevelUp(level int)
}

// GravityListener is optionally implemented by a Listener that wants to hear
// every successful timed downward step.
type GravityListener interface {
	OnGravity()
}

// StateListener is optionally implemented by a Listener that wants lifecycle
// transitions.
type StateListener interface {
	OnStateChange(from, to State)
}

// BestScores persists the best score per mode key. Errors are tolerated:
// a failed read counts as no best score and a failed write is dropped.
type BestScores interface {
	BestScore(key string) (int, error)
	SaveBestScore(key string, score int) error
}

type nopListener struct{}

func (nopListener) OnLock()         {}
func (nopListener) OnLineClear(int) {}
func (nopListener) OnLevelUp(int)   {}

// Listeners fans notifications out to several listeners in order.
type Listeners []Listener

func (ls Listeners) OnLock() {
	for _, l := range ls {
		l.OnLock()
	}
}

func (ls Listeners) OnLineClear(count int) {
	for _, l := range ls {
		l.OnLineClear(count)
	}
}

func (ls Listeners) OnLevelUp(level int) {
	for _, l := range ls {
		l.OnLevelUp(level)
	}
}

func (ls Listeners) OnGravity() {
	for _, l := range ls {
		if g, ok := l.(GravityListener); ok {
			g.OnGravity()
		}
	}
}

func (ls Listeners) OnStateChange(from, to State) {
	for _, l := range ls {
		if sl, ok := l.(StateListener); ok {
			sl.OnStateChange(from, to)
		}
	}
}
