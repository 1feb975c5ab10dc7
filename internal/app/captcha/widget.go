// Package captcha holds the token emitted by the external verification widget.
package captcha

import "sync"

// Widget mirrors the state of a CAPTCHA widget embedded in the form page.
// The widget reports a token through Verify; an empty token means the
// challenge expired.
type Widget struct {
	mu     sync.Mutex
	token  string
	resets int
}

// NewWidget creates an unverified widget.
func NewWidget() *Widget {
	return &Widget{}
}

// Verify is the widget callback. It replaces any previous token.
func (w *Widget) Verify(token string) {
	w.mu.Lock()
	w.token = token
	w.mu.Unlock()
}

// Token returns the current token, or "" if the widget is unverified.
func (w *Widget) Token() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.token
}

// Reset discards the token, forcing the user to verify again.
func (w *Widget) Reset() {
	w.mu.Lock()
	w.token = ""
	w.resets++
	w.mu.Unlock()
}

// Resets returns how many times the widget has been reset.
func (w *Widget) Resets() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resets
}
