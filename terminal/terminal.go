// Package terminal simulates a card terminal. The POS only ever hands it an
// amount and an invoice reference; no PAN, CVV or expiry crosses this
// boundary in either direction.
package terminal

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Decline reasons reported in outcome metadata.
const (
	ReasonInvalidAmount     = "invalid_amount"
	ReasonInsufficientFunds = "insufficient_funds"
	ReasonDoNotHonor        = "do_not_honor"
	ReasonExpiredCard       = "expired_card"
	ReasonTimeout           = "timeout"
)

// demo card pool, last four digits only
var demoLast4 = []string{"1111", "4242", "7777", "9003"}

var entryMethods = []string{"chip", "contactless", "swipe"}

var declineReasons = []string{ReasonInsufficientFunds, ReasonDoNotHonor, ReasonExpiredCard}

const applicationID = "A0000000031010"

// Outcome is the terminal's answer to a single charge request.
type Outcome struct {
	Status      string
	AuthCode    string
	MaskedCard  string
	TerminalRef string
	Meta        map[string]string
}

// Simulator stands in for the physical terminal. Randomness and clock are
// injected so tests can pin the outcome.
type Simulator struct {
	// ApproveRate is the probability that a valid-amount charge is
	// approved. Set to 0 or 1 in tests for a fixed outcome.
	ApproveRate float64

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
	seq uint64
}

func NewSimulator() *Simulator {
	return NewSeededSimulator(rand.NewSource(time.Now().UnixNano()), time.Now)
}

func NewSeededSimulator(src rand.Source, now func() time.Time) *Simulator {
	return &Simulator{
		ApproveRate: 0.90,
		rng:         rand.New(src),
		now:         now,
	}
}

// Charge authorizes or declines the given amount. A non-positive amount is
// always declined without consulting the random source. The terminal
// reference is unique per call so retried charges stay distinguishable.
func (s *Simulator) Charge(amount float64, invoiceRef string) Outcome {
	ref := s.nextRef(invoiceRef)

	if amount <= 0 {
		return Outcome{
			Status:      "declined",
			TerminalRef: ref,
			Meta:        map[string]string{"reason": ReasonInvalidAmount},
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < s.ApproveRate {
		last4 := demoLast4[s.rng.Intn(len(demoLast4))]
		return Outcome{
			Status:      "approved",
			AuthCode:    fmt.Sprintf("A%06d", s.rng.Intn(1_000_000)),
			MaskedCard:  fmt.Sprintf("**** **** **** %s", last4),
			TerminalRef: ref,
			Meta: map[string]string{
				"aid":    applicationID,
				"method": entryMethods[s.rng.Intn(len(entryMethods))],
			},
		}
	}

	return Outcome{
		Status:      "declined",
		TerminalRef: ref,
		Meta:        map[string]string{"reason": declineReasons[s.rng.Intn(len(declineReasons))]},
	}
}

// nextRef derives a reference from the invoice plus a timestamp and a
// process-wide counter, so two charges in the same second still differ.
func (s *Simulator) nextRef(invoiceRef string) string {
	seq := atomic.AddUint64(&s.seq, 1)
	return fmt.Sprintf("T-%s-%d-%04d", invoiceRef, s.now().Unix(), seq)
}
