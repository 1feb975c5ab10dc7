package captcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidget(t *testing.T) {
	w := NewWidget()
	assert.Empty(t, w.Token())

	w.Verify("tok-1")
	assert.Equal(t, "tok-1", w.Token())

	w.Verify("")
	assert.Empty(t, w.Token(), "expired challenge clears the token")

	w.Verify("tok-2")
	w.Reset()
	assert.Empty(t, w.Token())
	assert.Equal(t, 1, w.Resets())
}
