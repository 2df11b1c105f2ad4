package sendflow

// Stage identifies which field of the transfer request is currently
// editable. Progression is strictly linear; Esc walks one stage back.
type Stage int

const (
	// StageRecipient: the recipient address is being typed.
	StageRecipient Stage = iota
	// StageAmount: the SOL amount is being typed.
	StageAmount
	// StageConfirm: the request is frozen, awaiting an explicit yes/no.
	StageConfirm
)

func (s Stage) String() string {
	switch s {
	case StageRecipient:
		return "recipient"
	case StageAmount:
		return "amount"
	case StageConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Outcome is the one-shot result of a completed send flow. Exactly one of
// signature or error is populated; setting one clears the other.
type Outcome struct {
	signature string
	errMsg    string
}

// SetSignature records a successful submission.
func (o *Outcome) SetSignature(sig string) {
	o.signature = sig
	o.errMsg = ""
}

// SetError records a failed submission.
func (o *Outcome) SetError(msg string) {
	o.errMsg = msg
	o.signature = ""
}

// Signature returns the transaction signature of a successful submission.
func (o Outcome) Signature() string { return o.signature }

// Err returns the failure message of a failed submission.
func (o Outcome) Err() string { return o.errMsg }

// Empty reports whether no submission result is held (flow was cancelled
// or never ran).
func (o Outcome) Empty() bool { return o.signature == "" && o.errMsg == "" }
