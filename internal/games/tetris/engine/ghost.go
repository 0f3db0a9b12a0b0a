package engine

// Ghost returns where the active piece would land if dropped now.
func (s *Session) Ghost() (ActivePiece, bool) {
	if s.active == nil {
		return ActivePiece{}, false
	}
	g := *s.active
	for !s.board.Collides(g.Shape(), g.X, g.Y+1) {
		g.Y++
	}
	return g, true
}
