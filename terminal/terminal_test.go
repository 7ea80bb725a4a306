package terminal

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
}

func TestInvalidAmountAlwaysDeclined(t *testing.T) {
	sim := NewSeededSimulator(rand.NewSource(1), fixedClock)
	// Even a terminal that approves everything must refuse a non-positive amount.
	sim.ApproveRate = 1.0

	for _, amount := range []float64{0, -1, -9600} {
		out := sim.Charge(amount, "42")
		assert.Equal(t, "declined", out.Status)
		assert.Equal(t, ReasonInvalidAmount, out.Meta["reason"])
		assert.Empty(t, out.AuthCode)
		assert.Empty(t, out.MaskedCard)
		assert.NotEmpty(t, out.TerminalRef)
	}
}

func TestApprovedOutcomeShape(t *testing.T) {
	sim := NewSeededSimulator(rand.NewSource(7), fixedClock)
	sim.ApproveRate = 1.0

	out := sim.Charge(9600, "42")

	assert.Equal(t, "approved", out.Status)
	assert.Regexp(t, regexp.MustCompile(`^A\d{6}$`), out.AuthCode)
	assert.Regexp(t, regexp.MustCompile(`^\*\*\*\* \*\*\*\* \*\*\*\* (1111|4242|7777|9003)$`), out.MaskedCard)
	assert.Equal(t, "A0000000031010", out.Meta["aid"])
	assert.Contains(t, []string{"chip", "contactless", "swipe"}, out.Meta["method"])
	assert.Contains(t, out.TerminalRef, "T-42-")
}

func TestDeclinedReasonFromKnownSet(t *testing.T) {
	sim := NewSeededSimulator(rand.NewSource(3), fixedClock)
	sim.ApproveRate = 0.0

	out := sim.Charge(5000, "7")

	assert.Equal(t, "declined", out.Status)
	assert.Contains(t, []string{ReasonInsufficientFunds, ReasonDoNotHonor, ReasonExpiredCard}, out.Meta["reason"])
	assert.Empty(t, out.AuthCode)
}

func TestTerminalRefUniquePerCall(t *testing.T) {
	// Frozen clock forces the counter to carry uniqueness on its own.
	sim := NewSeededSimulator(rand.NewSource(11), fixedClock)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		out := sim.Charge(1000, "42")
		assert.False(t, seen[out.TerminalRef], "duplicate terminal ref %s", out.TerminalRef)
		seen[out.TerminalRef] = true
	}
}
