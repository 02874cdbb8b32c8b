package core

// DrawOverlay draws a bordered message box in the middle of the screen,
// one line of text per row with a blank row between lines.
func DrawOverlay(dst *Screen, color Color, lines ...string) {
	if len(lines) == 0 {
		return
	}

	maxLen := 0
	for _, l := range lines {
		maxLen = Max(maxLen, len([]rune(l)))
	}
	boxW := maxLen + 4
	boxH := len(lines)*2 + 1
	box := NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, color)
	for i, l := range lines {
		dst.DrawTextCenteredColor(box.Y+1+i*2, l, color)
	}
}
