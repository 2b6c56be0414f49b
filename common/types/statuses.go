package types

// TransferState is the state of the quote-then-send workflow.
type TransferState string

const (
	// StateIdle is the state before a quote exists.
	StateIdle TransferState = "IDLE"
	// StateQuoting is the state while the quote call is in flight.
	StateQuoting TransferState = "QUOTING"
	// StateQuoted is the state when a fee estimate is cached.
	StateQuoted TransferState = "QUOTED"
	// StateSending is the state while the send transaction is in flight.
	StateSending TransferState = "SENDING"
	// StateSettled is the state after a confirmed send.
	StateSettled TransferState = "SETTLED"
	// StateError is reported when a quote or send call failed. It is transient:
	// the workflow reverts to the state before the call.
	StateError TransferState = "ERROR"
)

func (s TransferState) String() string {
	return string(s)
}

// TransactionStatus is the on-chain outcome of a submitted transaction.
type TransactionStatus string

const (
	// TxPending is the status of a transaction without a receipt.
	TxPending TransactionStatus = "PENDING"
	// TxDone is the status of a transaction with a successful receipt.
	TxDone TransactionStatus = "DONE"
	// TxFailed is the status of a reverted transaction.
	TxFailed TransactionStatus = "FAILED"
)
