package evm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// signerAddress returns the address transactions are signed with.
//
// Returns:
// - common.Address: the signer's address.
// - error: an error if no private key is configured.
func (e *evm) signerAddress() (common.Address, error) {
	e.signerMutex.RLock()
	defer e.signerMutex.RUnlock()

	if e.signer == nil {
		return common.Address{}, errors.New("signer not initialized")
	}
	return e.signer.Address(), nil
}
