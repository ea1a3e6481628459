package record

import (
	"bytes"

	"github.com/code-payments/record-program/pkg/solana"
)

const (
	initializeAccountCount = 4
	updateAccountCount     = 2
)

type initializeAccounts struct {
	payer  *solana.Account
	record *solana.Account
}

type updateAccounts struct {
	payer  *solana.Account
	record *solana.Account
	state  *RecordAccount
}

// validateInitializeAccounts enforces the Initialize account shape:
//
//	0. [WRITE, SIGNER] Payer
//	1. [WRITE] Record (PDA of payer)
//	2. [] Rent sysvar
//	3. [] System program
//
// Checks run in a fixed order and the first failure wins. No state is
// mutated here.
func validateInitializeAccounts(accounts []*solana.Account) (*initializeAccounts, error) {
	if len(accounts) != initializeAccountCount {
		return nil, ErrInvalidInstructionData
	}

	payer, record := accounts[0], accounts[1]

	if !payer.IsSigner {
		return nil, ErrInvalidInstructionData
	}
	if !payer.IsWritable || !record.IsWritable {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(accounts[2].Key, SYSVAR_RENT_PUBKEY) {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(accounts[3].Key, SYSTEM_PROGRAM_ID) {
		return nil, ErrInvalidInstructionData
	}

	derived, _, err := GetRecordAddress(&GetRecordAddressArgs{
		Payer: payer.Key,
	})
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(derived, record.Key) {
		return nil, ErrPdaMismatch
	}

	// Re-initialization is rejected. The record account either doesn't exist
	// yet (no data) or holds the zero-filled allocation from the host.
	if len(record.Data) > 0 && record.Data[0] != 0 {
		return nil, ErrInvalidInstructionData
	}

	return &initializeAccounts{
		payer:  payer,
		record: record,
	}, nil
}

// validateUpdateAccounts enforces the Update account shape:
//
//	0. [WRITE, SIGNER] Payer
//	1. [WRITE] Record
//
// The record must be owned by this program, its stored owner must match the
// payer, and it must already be initialized. The decoded state is returned
// so the handler doesn't deserialize twice.
func validateUpdateAccounts(accounts []*solana.Account) (*updateAccounts, error) {
	if len(accounts) != updateAccountCount {
		return nil, ErrInvalidInstructionData
	}

	payer, record := accounts[0], accounts[1]

	if !payer.IsSigner {
		return nil, ErrInvalidInstructionData
	}
	if !payer.IsWritable || !record.IsWritable {
		return nil, ErrInvalidInstructionData
	}

	if !bytes.Equal(record.Owner, PROGRAM_ID) {
		return nil, ErrInvalidOwner
	}

	var state RecordAccount
	if err := state.Unmarshal(record.Data); err != nil {
		return nil, err
	}
	if !bytes.Equal(state.Owner, payer.Key) {
		return nil, ErrInvalidOwner
	}

	if !state.IsInitialized {
		return nil, ErrInvalidInstructionData
	}

	return &updateAccounts{
		payer:  payer,
		record: record,
		state:  &state,
	}, nil
}
