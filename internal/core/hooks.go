package core

// EventSink receives gameplay notifications, typically sound effects.
type EventSink interface {
	OnLock()
	OnLineClear(count int)
	OnLevelUp(level int)
}

// ScoreKeeper persists the best score per mode key.
type ScoreKeeper interface {
	BestScore(key string) (int, error)
	SaveBestScore(key string, score int) error
}

// Hooks are the collaborators a platform attaches to a game.
// Nil fields are allowed.
type Hooks struct {
	Events EventSink
	Scores ScoreKeeper
}
