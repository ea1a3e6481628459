package testutil

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/record-program/pkg/solana"
)

const defaultLamportsPerByte = 10

var systemProgramID = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))

// Bank is an in-memory stand-in for the host runtime's account storage plus
// the rent sysvar and system program collaborators. It hands out stable
// account handles, so mutations made during account creation are visible to
// the invocation that requested them.
type Bank struct {
	accounts map[string]*solana.Account
}

func NewBank() *Bank {
	return &Bank{
		accounts: make(map[string]*solana.Account),
	}
}

// Account returns the stable handle for a key, creating an empty
// system-owned account on first use.
func (b *Bank) Account(key ed25519.PublicKey) *solana.Account {
	encoded := base58.Encode(key)
	if account, ok := b.accounts[encoded]; ok {
		return account
	}

	account := &solana.Account{
		Key:   key,
		Owner: systemProgramID,
	}
	b.accounts[encoded] = account
	return account
}

// FundAccount credits lamports to an account, creating it if needed.
func (b *Bank) FundAccount(key ed25519.PublicKey, lamports uint64) *solana.Account {
	account := b.Account(key)
	account.Lamports += lamports
	return account
}

// MinimumBalance implements the rent sysvar collaborator with a flat
// per-byte rate.
func (b *Bank) MinimumBalance(size uint64) uint64 {
	return defaultLamportsPerByte * size
}

// CreateAccount implements the system program collaborator: debit the
// funder, allocate a zero-filled data region, and assign ownership.
func (b *Bank) CreateAccount(funder, address ed25519.PublicKey, lamports, size uint64, owner ed25519.PublicKey) error {
	from := b.Account(funder)
	if from.Lamports < lamports {
		return errors.Errorf("insufficient funds: %d < %d", from.Lamports, lamports)
	}

	to := b.Account(address)
	if len(to.Data) > 0 {
		return errors.New("account already in use")
	}

	from.Lamports -= lamports
	to.Lamports += lamports
	to.Data = make([]byte, size)
	to.Owner = owner
	return nil
}
