package render

// HalfBlock returns the glyph drawing two vertically stacked pixels in one
// terminal cell, with the foreground as the lit color. Returns false as the
// second value when the cell needs no foreground at all.
func HalfBlock(top, bottom bool) (rune, bool) {
	switch {
	case top && bottom:
		return '█', true
	case top:
		return '▀', true
	case bottom:
		return '▄', true
	default:
		return ' ', false
	}
}
