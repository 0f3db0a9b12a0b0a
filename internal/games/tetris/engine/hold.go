package engine

// HoldSlot keeps one piece aside. Holding is allowed once per spawn.
type HoldSlot struct {
	Held          PieceType
	UsedThisSpawn bool
}

// HoldPiece swaps the active piece into the hold slot. An empty slot takes the
// preview piece as the replacement. The swap is rejected, leaving every field
// untouched, when the replacement would collide at the spawn position.
func (s *Session) HoldPiece() bool {
	if !s.controllable() || s.hold.UsedThisSpawn {
		return false
	}
	current := s.active.Type

	if s.hold.Held == PieceNone {
		candidate := s.spawnPose(s.next)
		if s.board.Collides(candidate.Shape(), candidate.X, candidate.Y) {
			return false
		}
		s.hold.Held = current
		s.active = &candidate
		s.next = s.random.Draw()
	} else {
		candidate := s.spawnPose(s.hold.Held)
		if s.board.Collides(candidate.Shape(), candidate.X, candidate.Y) {
			return false
		}
		s.hold.Held = current
		s.active = &candidate
	}
	s.hold.UsedThisSpawn = true
	return true
}
