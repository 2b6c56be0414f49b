package transfer

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ClipFinance/oft-client/balance"
	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/ClipFinance/oft-client/common/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// nativeDecimals are the decimals of every supported chain's native currency.
	nativeDecimals = 18
	// eventBuffer is the capacity of each Subscribe channel.
	eventBuffer = 16
)

// ChainResolver looks up chain descriptors by chain id.
type ChainResolver interface {
	Get(chainID string) (types.ChainDescriptor, error)
}

// SessionSource provides the connected wallet session.
type SessionSource interface {
	Current() *types.Session
}

// Event describes a workflow transition.
type Event struct {
	State          types.TransferState `json:"state"`
	Status         string              `json:"status"`
	Estimate       *types.FeeEstimate  `json:"estimate,omitempty"`
	TxHash         string              `json:"txHash,omitempty"`
	Error          string              `json:"error,omitempty"`
	RefreshBalance bool                `json:"refreshBalance,omitempty"`
}

// form is a validated transfer request.
type form struct {
	session     *types.Session
	source      types.ChainDescriptor
	destination types.ChainDescriptor
	recipient   string
	amount      *big.Int
}

// Workflow runs the quote then send transfer flow. A send is only submitted
// with a fee estimate whose amount, chains and recipient equal the form at
// send time.
type Workflow struct {
	chains   ChainResolver
	sessions SessionSource
	logger   *logrus.Logger

	mu         sync.RWMutex
	state      types.TransferState
	status     string
	estimate   *types.FeeEstimate
	lastTxHash string

	listenersMu sync.Mutex
	listeners   map[uint64]chan Event
	nextID      uint64
}

// NewWorkflow creates an idle workflow.
//
// Parameters:
// - chains: resolves chain ids to descriptors.
// - sessions: provides the connected wallet.
// - logger: the logger for logging purposes.
//
// Returns:
// - *Workflow: the workflow in the Idle state.
func NewWorkflow(chains ChainResolver, sessions SessionSource, logger *logrus.Logger) *Workflow {
	return &Workflow{
		chains:    chains,
		sessions:  sessions,
		logger:    logger,
		state:     types.StateIdle,
		listeners: make(map[uint64]chan Event),
	}
}

// RequestQuote validates the form, quotes the cross-chain fee on the source
// chain and caches the result as the current estimate.
//
// Parameters:
// - ctx: the context for the contract call.
// - req: the transfer form.
//
// Returns:
// - *types.FeeEstimate: a copy of the new estimate.
// - error: a ValidationError when the form is incomplete (no call is made), a
// TransferExecutionError when the quote call fails.
func (w *Workflow) RequestQuote(ctx context.Context, req types.TransferRequest) (*types.FeeEstimate, error) {
	f, err := w.resolve(req)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.state == types.StateSending {
		w.mu.Unlock()
		return nil, xerrors.WrapValidation("state", xerrors.ErrSendInProgress)
	}
	previous := w.state
	if previous == types.StateQuoting || previous == types.StateSettled {
		previous = w.restingStateLocked()
	}
	w.state = types.StateQuoting
	w.status = fmt.Sprintf("[%s] -> [%s] Processing...", f.source.Name, f.destination.Name)
	event := w.eventLocked()
	w.mu.Unlock()
	w.publish(event)

	log := w.logger.WithFields(logrus.Fields{
		"source":      f.source.Name,
		"destination": f.destination.Name,
		"amount":      f.amount.String(),
	})

	param := types.NewSendParam(f.destination.EndpointID, f.recipient, f.amount)

	fee, err := w.quote(ctx, f, param)
	if err != nil {
		log.WithError(err).Warn("Quote failed")
		return nil, w.fail("quote", err, nil, types.StateQuoting, previous)
	}

	msgValue := new(big.Int).Set(fee.NativeFee)
	if f.source.NativeAdapter {
		msgValue.Add(msgValue, f.amount)
	}

	estimate := &types.FeeEstimate{
		SourceChain:      f.source,
		DestinationChain: f.destination,
		Recipient:        f.recipient,
		Amount:           new(big.Int).Set(f.amount),
		NativeFee:        new(big.Int).Set(fee.NativeFee),
		MsgValue:         msgValue,
		SendParam:        param,
		QuotedAt:         time.Now(),
	}

	w.mu.Lock()
	if w.state == types.StateSending {
		w.mu.Unlock()
		return nil, xerrors.WrapValidation("state", xerrors.ErrSendInProgress)
	}
	w.estimate = estimate
	w.state = types.StateQuoted
	w.status = feeStatus(estimate)
	event = w.eventLocked()
	w.mu.Unlock()
	w.publish(event)

	log.WithFields(logrus.Fields{
		"nativeFee": estimate.NativeFee.String(),
		"msgValue":  estimate.MsgValue.String(),
	}).Info("Quote received")

	return estimate.Clone(), nil
}

// CommitSend submits the transfer using the cached estimate and waits for the
// transaction to be mined.
//
// Parameters:
// - ctx: the context for the send and the receipt wait.
// - req: the live transfer form.
//
// Returns:
// - *types.Transaction: the confirmed transaction.
// - error: a ValidationError when there is no estimate or the form is invalid,
// a StaleEstimateError when the form no longer matches the estimate (the
// estimate is discarded and no call is made), a TransferExecutionError when
// the send fails before broadcast (the estimate is kept) or the receipt wait
// fails (the estimate is dropped and the error carries the tx hash).
func (w *Workflow) CommitSend(ctx context.Context, req types.TransferRequest) (*types.Transaction, error) {
	f, formErr := w.resolve(req)

	w.mu.Lock()
	if w.state == types.StateSending {
		w.mu.Unlock()
		return nil, xerrors.WrapValidation("state", xerrors.ErrSendInProgress)
	}
	if w.estimate == nil {
		w.mu.Unlock()
		return nil, xerrors.WrapValidation("estimate", xerrors.ErrNoEstimate)
	}
	var field string
	switch {
	case formErr == nil:
		field = w.estimate.Mismatch(f.amount, f.source, f.destination, f.recipient)
	case errors.Is(formErr, xerrors.ErrSameChain):
		field = w.sameChainField(req, w.estimate)
	default:
		w.mu.Unlock()
		return nil, formErr
	}
	if field != "" {
		w.estimate = nil
		w.state = types.StateIdle
		w.status = ""
		event := w.eventLocked()
		w.mu.Unlock()
		w.publish(event)

		w.logger.WithField("field", field).Info("Discarded stale fee estimate")
		return nil, &xerrors.StaleEstimateError{Field: field}
	}
	estimate := w.estimate.Clone()
	w.state = types.StateSending
	event := w.eventLocked()
	w.mu.Unlock()
	w.publish(event)

	log := w.logger.WithFields(logrus.Fields{
		"source":      estimate.SourceChain.Name,
		"destination": estimate.DestinationChain.Name,
		"amount":      estimate.Amount.String(),
		"msgValue":    estimate.MsgValue.String(),
	})

	contract, tx, err := w.submit(ctx, f.session, estimate)
	if err != nil {
		log.WithError(err).Warn("Send failed")
		return nil, w.fail("send", err, nil, types.StateSending, types.StateQuoted)
	}

	// Broadcast: any failure past this point drops the estimate.
	log = log.WithField("txHash", tx.Hash)
	if err := confirm(ctx, contract, tx); err != nil {
		log.WithError(err).Warn("Send not confirmed")
		return nil, w.fail("send", err, tx, types.StateSending, types.StateIdle)
	}

	w.mu.Lock()
	w.lastTxHash = tx.Hash
	w.estimate = nil
	w.state = types.StateSettled
	w.status = fmt.Sprintf("Transaction successful! Tx Hash: %s", tx.Hash)
	event = w.eventLocked()
	w.mu.Unlock()

	event.RefreshBalance = true
	w.publish(event)

	log.Info("Transfer settled")
	return tx, nil
}

// Reset drops the estimate and returns the workflow to Idle. It has no effect
// while a send is in flight.
func (w *Workflow) Reset() {
	w.mu.Lock()
	if w.state == types.StateSending {
		w.mu.Unlock()
		return
	}
	w.estimate = nil
	w.state = types.StateIdle
	w.status = ""
	event := w.eventLocked()
	w.mu.Unlock()
	w.publish(event)
}

// State returns the current workflow state.
func (w *Workflow) State() types.TransferState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// Estimate returns a copy of the cached estimate or nil.
func (w *Workflow) Estimate() *types.FeeEstimate {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.estimate.Clone()
}

// LastTxHash returns the hash of the last settled transfer.
func (w *Workflow) LastTxHash() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastTxHash
}

// Snapshot returns the current state as an event.
func (w *Workflow) Snapshot() Event {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.eventLocked()
}

// Subscribe returns a channel receiving every transition and a function
// cancelling the subscription. Events are dropped for slow subscribers.
func (w *Workflow) Subscribe() (<-chan Event, func()) {
	w.listenersMu.Lock()
	defer w.listenersMu.Unlock()

	id := w.nextID
	w.nextID++
	ch := make(chan Event, eventBuffer)
	w.listeners[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			w.listenersMu.Lock()
			defer w.listenersMu.Unlock()
			delete(w.listeners, id)
			close(ch)
		})
	}
}

func (w *Workflow) quote(ctx context.Context, f *form, param types.SendParam) (*types.MessagingFee, error) {
	contract, err := f.session.Provider.TokenContract(ctx, f.source)
	if err != nil {
		return nil, err
	}

	fee, err := contract.QuoteSend(ctx, param, false)
	if err != nil {
		return nil, err
	}
	if fee == nil || fee.NativeFee == nil {
		return nil, errors.New("empty fee quote")
	}
	return fee, nil
}

// submit signs and broadcasts the send transaction. An error means nothing was
// broadcast.
func (w *Workflow) submit(ctx context.Context, session *types.Session, estimate *types.FeeEstimate) (types.TokenContract, *types.Transaction, error) {
	contract, err := session.Provider.TokenContract(ctx, estimate.SourceChain)
	if err != nil {
		return nil, nil, err
	}

	fee := types.MessagingFee{
		NativeFee:  estimate.NativeFee,
		LzTokenFee: big.NewInt(0),
	}

	tx, err := contract.Send(ctx, estimate.SendParam, fee, estimate.Recipient, estimate.MsgValue)
	if err != nil {
		return nil, nil, err
	}
	return contract, tx, nil
}

// confirm waits for the receipt of a broadcast transaction.
func confirm(ctx context.Context, contract types.TokenContract, tx *types.Transaction) error {
	status, err := contract.WaitTransactionConfirmation(ctx, tx)
	if err != nil {
		return err
	}
	if status != types.TxDone {
		return errors.Errorf("transaction %s reverted", tx.Hash)
	}
	return nil
}

// fail reports a failed contract call and moves the workflow from the
// in-flight state to next, unless another call changed the state meanwhile.
// A non-nil tx was broadcast: its hash is kept and the estimate is dropped.
func (w *Workflow) fail(op string, err error, tx *types.Transaction, from, next types.TransferState) error {
	execErr := &xerrors.TransferExecutionError{Op: op, Err: err}

	w.mu.Lock()
	w.status = "Error: " + execErr.Error()
	if tx != nil {
		execErr.TxHash = tx.Hash
		w.lastTxHash = tx.Hash
		w.estimate = nil
		w.status += "\nTx Hash: " + tx.Hash
	}
	failed := w.eventLocked()
	failed.State = types.StateError
	failed.Error = execErr.Error()
	failed.TxHash = execErr.TxHash

	if w.state == from {
		w.state = next
	}
	current := w.eventLocked()
	current.RefreshBalance = tx != nil
	w.mu.Unlock()

	w.publish(failed)
	w.publish(current)
	return execErr
}

// sameChainField names the chain field that moved away from the estimate when
// the form names one chain on both sides.
func (w *Workflow) sameChainField(req types.TransferRequest, estimate *types.FeeEstimate) string {
	destination, err := w.chains.Get(req.DestinationChainID)
	if err == nil && destination.Equal(estimate.DestinationChain) {
		return "sourceChain"
	}
	return "destinationChain"
}

// restingStateLocked is the state the workflow rests in given its estimate.
func (w *Workflow) restingStateLocked() types.TransferState {
	if w.estimate != nil {
		return types.StateQuoted
	}
	return types.StateIdle
}

func (w *Workflow) resolve(req types.TransferRequest) (*form, error) {
	session := w.sessions.Current()
	if session == nil || session.Provider == nil {
		return nil, xerrors.WrapValidation("session", xerrors.ErrNoSession)
	}

	recipient := strings.TrimSpace(req.Recipient)
	if recipient == "" {
		return nil, xerrors.NewValidationError("recipient", "required")
	}
	if !common.IsHexAddress(recipient) {
		return nil, xerrors.NewValidationError("recipient", "not a valid address")
	}

	if strings.TrimSpace(req.Amount) == "" {
		return nil, xerrors.NewValidationError("amount", "required")
	}
	if strings.TrimSpace(req.DestinationChainID) == "" {
		return nil, xerrors.NewValidationError("destinationChain", "required")
	}

	sourceID := req.SourceChainID
	if strings.TrimSpace(sourceID) == "" {
		sourceID = session.ChainID
	}
	source, err := w.chains.Get(sourceID)
	if err != nil {
		return nil, xerrors.WrapValidation("sourceChain", err)
	}
	destination, err := w.chains.Get(req.DestinationChainID)
	if err != nil {
		return nil, xerrors.WrapValidation("destinationChain", err)
	}
	if source.ChainID == destination.ChainID {
		return nil, xerrors.WrapValidation("destinationChain", xerrors.ErrSameChain)
	}

	amount, reason := ParseAmount(req.Amount, source.TokenDecimals)
	if reason != "" {
		return nil, xerrors.NewValidationError("amount", reason)
	}

	return &form{
		session:     session,
		source:      source,
		destination: destination,
		recipient:   common.HexToAddress(recipient).Hex(),
		amount:      amount,
	}, nil
}

func (w *Workflow) eventLocked() Event {
	event := Event{
		State:    w.state,
		Status:   w.status,
		Estimate: w.estimate.Clone(),
	}
	if w.state == types.StateSettled {
		event.TxHash = w.lastTxHash
	}
	return event
}

func (w *Workflow) publish(event Event) {
	w.listenersMu.Lock()
	defer w.listenersMu.Unlock()

	for _, ch := range w.listeners {
		select {
		case ch <- event:
		default:
			w.logger.WithField("state", event.State).Warn("Dropped workflow event")
		}
	}
}

func feeStatus(estimate *types.FeeEstimate) string {
	symbol := estimate.SourceChain.NativeTokenSymbol
	status := fmt.Sprintf("Estimated native fee: %s %s", balance.Format(estimate.NativeFee, nativeDecimals), symbol)
	if estimate.SourceChain.NativeAdapter {
		status += fmt.Sprintf("\nTotal (native fee + amount): %s %s", balance.Format(estimate.MsgValue, nativeDecimals), symbol)
	}
	return status
}
