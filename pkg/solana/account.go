package solana

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// Account is the view of an account a program receives from the runtime for
// the duration of a single invocation. The runtime locks the account before
// dispatch, so the snapshot is stable until the invocation returns; programs
// must not retain it beyond that.
//
// Data aliases the runtime's buffer. Writes to it are only persisted when the
// invocation returns success, so a program that fails an instruction midway
// must take care to not have written anything yet.
type Account struct {
	Key        ed25519.PublicKey
	Lamports   uint64
	Data       []byte
	Owner      ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
}

func (a *Account) String() string {
	return base58.Encode(a.Key)
}
