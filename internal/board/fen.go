package board

import (
	"strconv"
	"strings"
)

// StartFEN describes the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPositionFromFEN sets up a position from a FEN-style board description:
// placement, side to move, castling rights (K/Q letters or Shredder file
// letters, uppercase for white), en-passant target and half-move clock.
//
// The parser trusts well-formed input; a malformed string yields an
// undefined placement rather than an error. Validating foreign input is
// the protocol layer's job.
func NewPositionFromFEN(fen string) Position {
	p := Position{EpSquare: NoSquare}
	fields := strings.Fields(fen)

	// Placement, rank 8 downward.
	sq := A8
	for i := 0; i < len(fields[0]); i++ {
		switch ch := fields[0][i]; {
		case ch == '/':
			sq -= 16
		case '1' <= ch && ch <= '8':
			sq += Square(ch - '0')
		default:
			if pt, c, ok := PieceTypeFromGlyph(ch); ok {
				p.set(c, pt, sq)
				sq++
			}
		}
	}

	if fields[1] == "b" {
		p.Turn = Black
		p.Key ^= zobristTurn
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			ch := fields[2][i]
			color := Black
			if ch < 'a' {
				color = White
			}
			var file int
			switch up := ch &^ 0x20; {
			case up == 'K':
				file = 7
			case up == 'Q':
				file = 0
			case 'A' <= up && up <= 'H':
				file = int(up - 'A')
			default:
				continue
			}
			p.CastlableRooks = p.CastlableRooks.Set(NewSquare(file, 7*int(color)))
		}
	}
	p.Key ^= castlingKey(p.CastlableRooks)

	if fields[3] != "-" {
		if ep, err := ParseSquare(fields[3]); err == nil {
			p.EpSquare = ep
			p.Key ^= zobristEnPassant[ep]
		}
	}

	if len(fields) > 4 {
		p.Rule50, _ = strconv.Atoi(fields[4])
	}
	return p
}

// FEN renders the position back into board-description form. Castling
// rights on corner rooks use the usual K/Q letters, rights elsewhere use
// Shredder file letters. The full-move counter is not tracked and renders
// as 1.
func (p *Position) FEN() string {
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			sq := NewSquare(f, r)
			if !p.Occupied().IsSet(sq) {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.PieceOn(sq).Glyph(p.ColorOn(sq)))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	if p.CastlableRooks == 0 {
		sb.WriteByte('-')
	} else {
		for c := White; c <= Black; c++ {
			// Kingside first: walk the rank from the h-file down.
			for b := p.CastlableRooks & rankMask[7*int(c)]; b != 0; {
				sq := b.MSB()
				b = b.Clear(sq)
				var letter byte
				switch sq.File() {
				case 7:
					letter = 'K'
				case 0:
					letter = 'Q'
				default:
					letter = byte('A' + sq.File())
				}
				if c == Black {
					letter |= 0x20
				}
				sb.WriteByte(letter)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(p.EpSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" 1")
	return sb.String()
}
