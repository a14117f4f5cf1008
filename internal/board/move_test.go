package board

import "testing"

func TestMoveAccessors(t *testing.T) {
	m := NewMove(E2, E4)
	if m.From() != E2 || m.To() != E4 || m.Promotion() != NoPieceType {
		t.Errorf("e2e4 decodes as %v-%v promo %v", m.From(), m.To(), m.Promotion())
	}
	if m.String() != "e2e4" {
		t.Errorf("String() = %q, want e2e4", m.String())
	}

	p := NewPromotion(A7, A8, Queen)
	if p.Promotion() != Queen {
		t.Errorf("promotion piece = %v, want queen", p.Promotion())
	}
	if p.String() != "a7a8q" {
		t.Errorf("String() = %q, want a7a8q", p.String())
	}

	if NoMove.String() != "0000" {
		t.Errorf("null move renders as %q", NoMove.String())
	}
}

// No legal move may encode as zero, or it would be indistinguishable from
// an empty table slot.
func TestNoMoveDoesNotCollide(t *testing.T) {
	if NewMove(A1, A1) == NoMove {
		t.Error("a1a1 collides with the null move")
	}
}

func TestMoveFromUCICastling(t *testing.T) {
	pos := NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	m, err := MoveFromUCI(&pos, "e1g1")
	if err != nil {
		t.Fatal(err)
	}
	if m != NewMove(E1, H1) {
		t.Errorf("e1g1 parsed as %v, want the king-takes-rook form e1h1", m)
	}

	m, err = MoveFromUCI(&pos, "e1c1")
	if err != nil {
		t.Fatal(err)
	}
	if m != NewMove(E1, A1) {
		t.Errorf("e1c1 parsed as %v, want e1a1", m)
	}

	// Without the right there is no rook to retarget at.
	bare := NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	if _, err := MoveFromUCI(&bare, "e1g1"); err == nil {
		t.Error("castling parsed without a castling right")
	}
}

func TestMoveFromUCIRejectsGarbage(t *testing.T) {
	pos := NewPositionFromFEN(StartFEN)
	for _, s := range []string{"", "e2", "e2e4x", "i2i4", "e7e8x", "e7e8k"} {
		if _, err := MoveFromUCI(&pos, s); err == nil {
			t.Errorf("%q parsed without error", s)
		}
	}
}

func TestMoveToUCICastling(t *testing.T) {
	pos := NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if got := MoveToUCI(&pos, NewMove(E1, H1)); got != "e1g1" {
		t.Errorf("MoveToUCI(e1h1) = %q, want e1g1", got)
	}
	if got := MoveToUCI(&pos, NewMove(E1, A1)); got != "e1c1" {
		t.Errorf("MoveToUCI(e1a1) = %q, want e1c1", got)
	}
	// A genuine rook capture keeps its literal form.
	if got := MoveToUCI(&pos, NewMove(A1, A8)); got != "a1a8" {
		t.Errorf("MoveToUCI(a1a8) = %q, want a1a8", got)
	}
}

func TestMoveToWire(t *testing.T) {
	pos := NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if got := MoveToWire(&pos, NewMove(E1, H1)); got != NewMove(E1, G1) {
		t.Errorf("MoveToWire(e1h1) = %v, want e1g1", got)
	}
	if got := MoveToWire(&pos, NewMove(E1, A1)); got != NewMove(E1, C1) {
		t.Errorf("MoveToWire(e1a1) = %v, want e1c1", got)
	}
	// Non-castling moves pass through, a rook capture included.
	for _, m := range []Move{NewMove(E1, E2), NewMove(A1, A8), NewMove(H1, H5)} {
		if got := MoveToWire(&pos, m); got != m {
			t.Errorf("MoveToWire(%v) = %v, want it unchanged", m, got)
		}
	}
}

func TestMoveRoundTripThroughUCI(t *testing.T) {
	pos := NewPositionFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		wire := MoveToUCI(&pos, m)
		back, err := MoveFromUCI(&pos, wire)
		if err != nil {
			t.Fatalf("%v -> %q -> %v", m, wire, err)
		}
		if back != m {
			t.Errorf("%v -> %q -> %v", m, wire, back)
		}
	}
}

func TestMoveListContains(t *testing.T) {
	var ml MoveList
	ml.Add(NewMove(E2, E4))
	ml.Add(NewMove(D2, D4))
	if !ml.Contains(NewMove(E2, E4)) || ml.Contains(NewMove(A2, A3)) {
		t.Error("Contains is wrong")
	}
	if ml.Len() != 2 || len(ml.Slice()) != 2 {
		t.Error("length bookkeeping is wrong")
	}
}
