package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNameResolutionOrder(t *testing.T) {
	u := User{TGID: "42", Username: "@pepe", Name: "Pepe Ruiz", GameNick: "xXpepeXx"}
	assert.Equal(t, "xXpepeXx", u.DisplayName())

	u.GameNick = ""
	assert.Equal(t, "@pepe", u.DisplayName())

	u.Username = "  "
	assert.Equal(t, "Pepe Ruiz", u.DisplayName())

	u.Name = ""
	assert.Equal(t, "42", u.DisplayName())
}

func TestNewRequestID(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "R1700000000000_42", NewRequestID(at, "42"))

	// más tarde ⇒ id lexicográficamente distinto, sin contador central
	later := NewRequestID(at.Add(time.Millisecond), "42")
	assert.NotEqual(t, NewRequestID(at, "42"), later)
}

func TestSplitToken(t *testing.T) {
	action, args := SplitToken(PickResponderToken("R1_7", "99"))
	assert.Equal(t, CBPickResponder, action)
	assert.Equal(t, []string{"R1_7", "99"}, args)

	action, args = SplitToken(CBCancel)
	assert.Equal(t, CBCancel, action)
	assert.Empty(t, args)
}
