package board

// rankSpan returns the squares from a to b inclusive, which must share a
// rank.
func rankSpan(a, b Square) Bitboard {
	if a > b {
		a, b = b, a
	}
	var s Bitboard
	for sq := a; sq <= b; sq++ {
		s = s.Set(sq)
	}
	return s
}

// GenerateMoves appends the pseudo-legal moves for the side to move.
// Castling is emitted in the internal king-takes-rook form and is the one
// move kind checked for attacked transit squares here; everything else is
// left to the legality filter.
func (p *Position) GenerateMoves(list *MoveList) {
	us, them := p.Turn, p.Turn.Other()
	occ := p.Occupied()
	own := p.ByColor[us]

	p.generatePawnMoves(list)

	for b := p.Get(us, Knight); b != 0; {
		from := b.PopLSB()
		for t := knightAttacks[from] &^ own; t != 0; {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}
	for b := p.Get(us, Bishop); b != 0; {
		from := b.PopLSB()
		for t := BishopAttacks(from, occ) &^ own; t != 0; {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}
	for b := p.Get(us, Rook); b != 0; {
		from := b.PopLSB()
		for t := RookAttacks(from, occ) &^ own; t != 0; {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}
	for b := p.Get(us, Queen); b != 0; {
		from := b.PopLSB()
		for t := (RookAttacks(from, occ) | BishopAttacks(from, occ)) &^ own; t != 0; {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}

	ksq := p.KingSquare(us)
	for t := kingAttacks[ksq] &^ own; t != 0; {
		list.Add(NewMove(ksq, t.PopLSB()))
	}

	// Castling: for each of our castlable rooks, the king and rook paths
	// must be clear and the king path (origin included) unattacked.
	for rooks := p.CastlableRooks & own; rooks != 0; {
		rsq := rooks.PopLSB()
		r := ksq.Rank()

		ktarget, rtarget := NewSquare(6, r), NewSquare(5, r)
		if rsq < ksq {
			ktarget, rtarget = NewSquare(2, r), NewSquare(3, r)
		}

		path := rankSpan(ksq, ktarget) | rankSpan(rsq, rtarget)
		path &^= SquareBB(ksq) | SquareBB(rsq)
		if occ&path != 0 {
			continue
		}

		safe := true
		for b := rankSpan(ksq, ktarget); b != 0; {
			if p.Attacked(b.PopLSB(), them) {
				safe = false
				break
			}
		}
		if safe {
			list.Add(NewMove(ksq, rsq))
		}
	}
}

func (p *Position) generatePawnMoves(list *MoveList) {
	us, them := p.Turn, p.Turn.Other()
	occ := p.Occupied()
	push := us.PushDir()

	addPawnMove := func(from, to Square) {
		if to.RelativeRank(us) == 7 {
			for pt := Queen; pt >= Knight; pt-- {
				list.Add(NewPromotion(from, to, pt))
			}
		} else {
			list.Add(NewMove(from, to))
		}
	}

	for b := p.Get(us, Pawn); b != 0; {
		from := b.PopLSB()

		one := Square(int(from) + push)
		if !occ.IsSet(one) {
			addPawnMove(from, one)
			if from.RelativeRank(us) == 1 {
				two := Square(int(one) + push)
				if !occ.IsSet(two) {
					list.Add(NewMove(from, two))
				}
			}
		}

		targets := pawnAttacks[us][from] & p.ByColor[them]
		if p.EpSquare != NoSquare {
			targets |= pawnAttacks[us][from] & SquareBB(p.EpSquare)
		}
		for targets != 0 {
			addPawnMove(from, targets.PopLSB())
		}
	}
}

// GenerateLegalMoves runs the pseudo-legal generator and keeps the moves
// that leave the mover's king safe, each verified through the pure Play
// transition.
func (p *Position) GenerateLegalMoves() MoveList {
	var pseudo, legal MoveList
	p.GenerateMoves(&pseudo)

	us, them := p.Turn, p.Turn.Other()
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		next := p.Play(m)
		if !next.Attacked(next.KingSquare(us), them) {
			legal.Add(m)
		}
	}
	return legal
}
