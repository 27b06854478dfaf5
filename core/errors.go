package core

import "errors"

var (
	// ErrWalletUnavailable means no wallet backend could be opened. Fatal
	// to every signing path.
	ErrWalletUnavailable = errors.New("wallet unavailable")

	// ErrUnknownChain means a chain id has no matching descriptor in the
	// configured chain set.
	ErrUnknownChain = errors.New("unknown chain")

	// ErrUnknownSigner means a submission was requested against a chain id
	// with no entry in the session signer table.
	ErrUnknownSigner = errors.New("unknown signer")

	// ErrQueryNotReady means a read was attempted before the querier or
	// session was initialized. Callers log it and abort the operation.
	ErrQueryNotReady = errors.New("querier not ready")
)
