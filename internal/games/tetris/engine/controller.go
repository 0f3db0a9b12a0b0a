package engine

// ActivePiece is the falling piece: its type, rotation index and the board
// position of its shape's top-left corner.
type ActivePiece struct {
	Type     PieceType
	Rotation int
	X        int
	Y        int
}

// Shape returns the cells of the piece at its current rotation.
func (p ActivePiece) Shape() Shape {
	return ShapeOf(p.Type, p.Rotation)
}

// controllable reports whether player commands apply right now.
func (s *Session) controllable() bool {
	return s.state == StateRunning && s.active != nil && s.clear == nil
}

// CheckCollision reports whether the active piece would be blocked at (x, y)
// with the given rotation. Without an active piece every position is blocked.
func (s *Session) CheckCollision(x, y, rotation int) bool {
	if s.active == nil {
		return true
	}
	return s.board.Collides(ShapeOf(s.active.Type, rotation), x, y)
}

// MovePiece shifts the active piece by (dx, dy). A blocked downward move
// locks the piece. It reports whether the piece moved.
func (s *Session) MovePiece(dx, dy int) bool {
	if !s.controllable() {
		return false
	}
	return s.movePiece(dx, dy)
}

func (s *Session) MoveLeft() bool  { return s.MovePiece(-1, 0) }
func (s *Session) MoveRight() bool { return s.MovePiece(1, 0) }
func (s *Session) SoftDrop() bool  { return s.MovePiece(0, 1) }

func (s *Session) movePiece(dx, dy int) bool {
	p := s.active
	nx, ny := p.X+dx, p.Y+dy
	if !s.CheckCollision(nx, ny, p.Rotation) {
		p.X, p.Y = nx, ny
		return true
	}
	if dy > 0 {
		s.placePiece()
	}
	return false
}

// RotatePiece advances the rotation index in place. There are no wall kicks:
// a blocked rotation is rejected.
func (s *Session) RotatePiece() bool {
	if !s.controllable() {
		return false
	}
	p := s.active
	next := (p.Rotation + 1) % RotationCount(p.Type)
	if s.CheckCollision(p.X, p.Y, next) {
		return false
	}
	p.Rotation = next
	return true
}

// HardDrop moves the piece down until it locks, awarding points per row.
// It returns the number of rows travelled.
func (s *Session) HardDrop() int {
	if !s.controllable() {
		return 0
	}
	rows := 0
	for s.movePiece(0, 1) {
		rows++
		s.score += s.rules.HardDropPoints
	}
	return rows
}

// placePiece writes the active piece into the board, then either starts a
// line clear or spawns the next piece.
func (s *Session) placePiece() {
	p := s.active
	s.board.Place(p.Shape(), p.X, p.Y, p.Type)
	s.active = nil
	s.listener.OnLock()

	if rows := s.board.FullRows(); len(rows) > 0 {
		s.beginClear(rows)
		return
	}
	s.spawn()
}

func (s *Session) spawnPose(t PieceType) ActivePiece {
	return ActivePiece{Type: t, X: s.board.Width()/2 - 1, Y: 0}
}

// spawn promotes the preview piece to active and draws a new preview.
// A blocked spawn ends the game, or wipes the board in no-loss modes.
func (s *Session) spawn() {
	if s.next == PieceNone {
		s.next = s.random.Draw()
	}
	piece := s.spawnPose(s.next)
	s.active = &piece
	s.next = s.random.Draw()
	s.hold.UsedThisSpawn = false

	if !s.board.Collides(piece.Shape(), piece.X, piece.Y) {
		return
	}
	if s.mode.NoLoss() {
		s.board.Clear()
		return
	}
	s.gameOver()
}
