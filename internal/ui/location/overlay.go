package location

// Token identifies one opened suggestion overlay. The zero Token never
// matches an open overlay.
type Token uint64

// Overlay tracks which suggestion dropdown, if any, is currently open so a
// single document-level click listener can dismiss it.
type Overlay struct {
	next    Token
	current Token
}

// Open records a new overlay and returns its token; any previous overlay is
// considered replaced.
func (o *Overlay) Open() Token {
	o.next++
	o.current = o.next
	return o.current
}

// Current returns the token of the open overlay, or zero.
func (o *Overlay) Current() Token {
	return o.current
}

// IsOpen reports whether tok still names the open overlay.
func (o *Overlay) IsOpen(tok Token) bool {
	return tok != 0 && tok == o.current
}

// Close clears the open overlay if tok names it. It reports whether anything
// was closed.
func (o *Overlay) Close(tok Token) bool {
	if !o.IsOpen(tok) {
		return false
	}
	o.current = 0
	return true
}

// Dismiss handles a document click: the open overlay is closed unless the
// click landed inside the input or the overlay itself. It returns the token
// that was closed, or zero.
func (o *Overlay) Dismiss(insideInput, insideOverlay bool) Token {
	if o.current == 0 || insideInput || insideOverlay {
		return 0
	}
	tok := o.current
	o.current = 0
	return tok
}
