package record

import (
	"crypto/ed25519"
)

// Rent is the rent sysvar collaborator.
type Rent interface {
	// MinimumBalance returns the lamports an account of the given data size
	// must hold to be exempt from rent collection.
	MinimumBalance(size uint64) uint64
}

// SystemProgram is the account creation collaborator. The host debits the
// funder, allocates a zero-filled data region of the requested size, and
// assigns ownership to the given program.
type SystemProgram interface {
	CreateAccount(funder, address ed25519.PublicKey, lamports, size uint64, owner ed25519.PublicKey) error
}
