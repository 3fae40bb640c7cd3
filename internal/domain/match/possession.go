package match

// Possession is the alternating-possession arrow. The zero value shows neither side.
type Possession Side

const PossessionNone Possession = ""

// Toggle flips the arrow for side. Lighting one side turns the other off.
func (p *Possession) Toggle(side Side) {
	if !side.Valid() {
		return
	}
	if *p == Possession(side) {
		*p = PossessionNone
		return
	}
	*p = Possession(side)
}

// Points reports whether the arrow is lit for side.
func (p Possession) Points(side Side) bool {
	return side.Valid() && p == Possession(side)
}
