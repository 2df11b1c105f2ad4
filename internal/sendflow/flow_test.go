package sendflow

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexZinkM/solace/internal/client"
	"github.com/AlexZinkM/solace/internal/wallet"
)

// fakeGateway is an in-memory Gateway for driving the flow without a node.
type fakeGateway struct {
	balance      uint64
	balanceErr   error
	balanceCalls int

	blockhash    solana.Hash
	blockhashErr error

	submitSig solana.Signature
	submitErr error
	submitted []*solana.Transaction
}

func (f *fakeGateway) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	f.balanceCalls++
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeGateway) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	if f.blockhashErr != nil {
		return solana.Hash{}, f.blockhashErr
	}
	return f.blockhash, nil
}

func (f *fakeGateway) SubmitAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.submitted = append(f.submitted, tx)
	if f.submitErr != nil {
		return solana.Signature{}, f.submitErr
	}
	return f.submitSig, nil
}

func (f *fakeGateway) RecentSignatures(ctx context.Context, account solana.PublicKey, limit int) ([]client.Activity, error) {
	return nil, nil
}

func newTestFlow(t *testing.T, gw *fakeGateway) (*Flow, *wallet.Session) {
	t.Helper()
	sess := wallet.NewSession(gw, solana.NewWallet().PrivateKey, zap.NewNop())
	return New(zap.NewNop()), sess
}

func typeText(f *Flow, sess *wallet.Session, text string) {
	for _, r := range text {
		f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: r})
	}
}

func accept(f *Flow, sess *wallet.Session) bool {
	return f.Handle(context.Background(), sess, Event{Kind: EventAccept})
}

func cancel(f *Flow, sess *wallet.Session) bool {
	return f.Handle(context.Background(), sess, Event{Kind: EventCancel})
}

const validRecipient = "11111111111111111111111111111111"

func TestFlowStartsEmptyAtRecipient(t *testing.T) {
	f, _ := newTestFlow(t, &fakeGateway{})
	assert.Equal(t, StageRecipient, f.Stage())
	assert.Empty(t, f.Recipient())
	assert.Empty(t, f.Amount())
}

func TestAcceptWithEmptyRecipientStays(t *testing.T) {
	f, sess := newTestFlow(t, &fakeGateway{})

	done := accept(f, sess)

	assert.False(t, done)
	assert.Equal(t, StageRecipient, f.Stage())
}

func TestAcceptWithInvalidRecipientStaysEditable(t *testing.T) {
	f, sess := newTestFlow(t, &fakeGateway{})
	typeText(f, sess, "not-an-address")

	done := accept(f, sess)

	assert.False(t, done)
	assert.Equal(t, StageRecipient, f.Stage())
	assert.Equal(t, "not-an-address", f.Recipient(), "offending text stays editable")
	assert.Contains(t, f.FieldError(), "invalid recipient")
}

func TestAcceptWithValidRecipientAdvances(t *testing.T) {
	f, sess := newTestFlow(t, &fakeGateway{})
	typeText(f, sess, validRecipient)

	done := accept(f, sess)

	assert.False(t, done)
	assert.Equal(t, StageAmount, f.Stage())
	assert.Equal(t, validRecipient, f.Recipient())
	assert.Empty(t, f.FieldError())
}

func TestAmountInputFiltersCharacters(t *testing.T) {
	f, sess := newTestFlow(t, &fakeGateway{})
	typeText(f, sess, validRecipient)
	accept(f, sess)

	typeText(f, sess, "1a.b5.x2")

	assert.Equal(t, "1.52", f.Amount(), "only digits and a single decimal separator")
}

func TestBackspaceEditsActiveField(t *testing.T) {
	f, sess := newTestFlow(t, &fakeGateway{})
	typeText(f, sess, "abc")
	f.Handle(context.Background(), sess, Event{Kind: EventBackspace})
	assert.Equal(t, "ab", f.Recipient())

	f.recipient = validRecipient
	accept(f, sess)
	typeText(f, sess, "1.5")
	f.Handle(context.Background(), sess, Event{Kind: EventBackspace})
	assert.Equal(t, "1.", f.Amount())
}

func TestCancelWalksBackwards(t *testing.T) {
	f, sess := newTestFlow(t, &fakeGateway{})
	typeText(f, sess, validRecipient)
	accept(f, sess)
	typeText(f, sess, "0.5")
	accept(f, sess)
	require.Equal(t, StageConfirm, f.Stage())

	done := cancel(f, sess)
	assert.False(t, done)
	assert.Equal(t, StageAmount, f.Stage())
	assert.Equal(t, "0.5", f.Amount(), "amount preserved on step back")

	done = cancel(f, sess)
	assert.False(t, done)
	assert.Equal(t, StageRecipient, f.Stage())
	assert.Equal(t, validRecipient, f.Recipient())

	done = cancel(f, sess)
	assert.True(t, done, "cancel from the first stage exits the flow")
	assert.True(t, f.Outcome().Empty())
}

func TestNoAtConfirmReturnsToAmount(t *testing.T) {
	gw := &fakeGateway{}
	f, sess := newTestFlow(t, gw)
	typeText(f, sess, validRecipient)
	accept(f, sess)
	typeText(f, sess, "0.25")
	accept(f, sess)

	done := f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: 'n'})

	assert.False(t, done)
	assert.Equal(t, StageAmount, f.Stage())
	assert.Equal(t, "0.25", f.Amount())
	assert.Empty(t, gw.submitted, "nothing reaches the gateway on 'no'")
}

func TestConfirmSubmitsAndRefreshesBalance(t *testing.T) {
	sig := solana.Signature{0xAB, 0xCD}
	gw := &fakeGateway{
		balance:   123_456_789,
		blockhash: solana.Hash{7, 7, 7},
		submitSig: sig,
	}
	f, sess := newTestFlow(t, gw)
	typeText(f, sess, validRecipient)
	accept(f, sess)
	typeText(f, sess, "0.01")
	accept(f, sess)

	done := f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: 'y'})

	assert.True(t, done, "'yes' always exits the flow")
	assert.Equal(t, sig.String(), f.Outcome().Signature())
	assert.Empty(t, f.Outcome().Err())

	require.Len(t, gw.submitted, 1)
	tx := gw.submitted[0]
	assert.Equal(t, gw.blockhash, tx.Message.RecentBlockhash)
	assert.Equal(t, sess.PublicKey(), tx.Message.AccountKeys[0], "payer is the session identity")
	assert.NoError(t, tx.VerifySignatures())

	// Balance comes from a fresh gateway query, not local arithmetic.
	assert.Equal(t, 1, gw.balanceCalls)
	assert.Equal(t, uint64(123_456_789), sess.Lamports())
}

func TestRejectedSubmissionExitsWithError(t *testing.T) {
	gw := &fakeGateway{
		blockhash: solana.Hash{1},
		submitErr: &client.RejectedError{Reason: "insufficient funds for instruction"},
	}
	f, sess := newTestFlow(t, gw)
	typeText(f, sess, validRecipient)
	accept(f, sess)
	typeText(f, sess, "5")
	accept(f, sess)

	done := f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: 'y'})

	assert.True(t, done)
	assert.Empty(t, f.Outcome().Signature())
	assert.Contains(t, f.Outcome().Err(), "insufficient funds")
	assert.Equal(t, 0, gw.balanceCalls, "no refresh after a failed submission")
}

func TestBlockhashFailureExitsWithError(t *testing.T) {
	gw := &fakeGateway{
		blockhashErr: &client.NetworkError{Op: "get latest blockhash", Err: context.DeadlineExceeded},
	}
	f, sess := newTestFlow(t, gw)
	typeText(f, sess, validRecipient)
	accept(f, sess)
	typeText(f, sess, "1")
	accept(f, sess)

	done := f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: 'y'})

	assert.True(t, done)
	assert.Contains(t, f.Outcome().Err(), "network error")
	assert.Empty(t, gw.submitted)
}

func TestInvalidAmountSurfacesAtConfirmTime(t *testing.T) {
	gw := &fakeGateway{blockhash: solana.Hash{1}}
	f, sess := newTestFlow(t, gw)
	typeText(f, sess, validRecipient)
	accept(f, sess)
	// "." passes the non-empty stage gate but fails the deferred parse.
	typeText(f, sess, ".")
	accept(f, sess)
	require.Equal(t, StageConfirm, f.Stage())

	done := f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: 'y'})

	assert.True(t, done)
	assert.Contains(t, f.Outcome().Err(), "invalid amount")
	assert.Empty(t, gw.submitted)
}

func TestResetAlwaysStartsFresh(t *testing.T) {
	gw := &fakeGateway{
		blockhash: solana.Hash{1},
		submitErr: &client.RejectedError{Reason: "blockhash not found"},
	}
	f, sess := newTestFlow(t, gw)

	// Exit via error.
	typeText(f, sess, validRecipient)
	accept(f, sess)
	typeText(f, sess, "1")
	accept(f, sess)
	f.Handle(context.Background(), sess, Event{Kind: EventRune, Rune: 'y'})
	f.Reset()
	assert.Equal(t, StageRecipient, f.Stage())
	assert.Empty(t, f.Recipient())
	assert.Empty(t, f.Amount())
	assert.True(t, f.Outcome().Empty())

	// Exit via cancel.
	typeText(f, sess, "partial")
	cancel(f, sess)
	f.Reset()
	assert.Equal(t, StageRecipient, f.Stage())
	assert.Empty(t, f.Recipient())
}

func TestOutcomeHoldsExactlyOneResult(t *testing.T) {
	var o Outcome
	o.SetError("boom")
	o.SetSignature("sig")
	assert.Equal(t, "sig", o.Signature())
	assert.Empty(t, o.Err())

	o.SetError("boom again")
	assert.Empty(t, o.Signature())
	assert.Equal(t, "boom again", o.Err())
}
