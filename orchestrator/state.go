package orchestrator

import (
	"fmt"
	"github.com/egaotan/solana-swap-offer/swap"
	"github.com/gagliardetto/solana-go"
)

type State int

const (
	Idle State = iota
	Validating
	Deriving
	Building
	AwaitingSignature
	Submitting
	Confirming
	Settled
	Failed
	Unconfirmed
)

var stateNames = map[State]string{
	Idle:              "idle",
	Validating:        "validating",
	Deriving:          "deriving",
	Building:          "building",
	AwaitingSignature: "awaiting_signature",
	Submitting:        "submitting",
	Confirming:        "confirming",
	Settled:           "settled",
	Failed:            "failed",
	Unconfirmed:       "unconfirmed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) Terminal() bool {
	return s == Settled || s == Failed || s == Unconfirmed
}

// Observer is told about every state change of an action.
type Observer func(action swap.Action, offer solana.PublicKey, from State, to State)

// Receipt is returned for every action, including failed ones, so that any
// signature already sent can be looked up.
type Receipt struct {
	Action     swap.Action
	Offer      solana.PublicKey
	Id         uint64
	Signatures []solana.Signature
	State      State
	NextId     uint64
	Explorer   []string
}

func (r *Receipt) LastSignature() solana.Signature {
	if len(r.Signatures) == 0 {
		return solana.Signature{}
	}
	return r.Signatures[len(r.Signatures)-1]
}

// Outcome is the terminal record of an action handed to the journal.
type Outcome struct {
	Action     swap.Action
	Offer      solana.PublicKey
	Id         uint64
	Signer     solana.PublicKey
	Signatures []solana.Signature
	State      State
	Reason     string
}

type Journal interface {
	Record(outcome *Outcome)
}

// Journals records every outcome in each journal in order.
type Journals []Journal

func (journals Journals) Record(outcome *Outcome) {
	for _, journal := range journals {
		journal.Record(outcome)
	}
}
