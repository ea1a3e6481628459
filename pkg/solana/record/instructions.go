package record

import (
	"bytes"
	"crypto/ed25519"

	"github.com/code-payments/record-program/pkg/solana"
)

type Command uint8

const (
	CommandInitialize Command = iota
	CommandUpdate
)

// Both instructions take their inputs solely from the account list, so the
// wire format is a single discriminant byte.
const InstructionDataSize = 1

type InitializeInstructionAccounts struct {
	Payer  ed25519.PublicKey
	Record ed25519.PublicKey
}

func NewInitializeInstruction(accounts *InitializeInstructionAccounts) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Payer
	//   1. [WRITE] Record (PDA of payer)
	//   2. [] Rent sysvar
	//   3. [] System program
	return solana.NewInstruction(
		PROGRAM_ID,
		[]byte{byte(CommandInitialize)},
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewAccountMeta(accounts.Record, false),
		solana.NewReadonlyAccountMeta(SYSVAR_RENT_PUBKEY, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

type UpdateInstructionAccounts struct {
	Payer  ed25519.PublicKey
	Record ed25519.PublicKey
}

func NewUpdateInstruction(accounts *UpdateInstructionAccounts) solana.Instruction {
	// # Account references
	//   0. [WRITE, SIGNER] Payer
	//   1. [WRITE] Record
	return solana.NewInstruction(
		PROGRAM_ID,
		[]byte{byte(CommandUpdate)},
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewAccountMeta(accounts.Record, false),
	)
}

// InitializeInstructionFromBinary reconstructs the Initialize account
// references from a compiled instruction.
func InitializeInstructionFromBinary(i solana.Instruction) (*InitializeInstructionAccounts, error) {
	if !bytes.Equal(i.Program, PROGRAM_ID) {
		return nil, ErrInvalidProgram
	}

	command, err := CommandFromBinary(i.Data)
	if err != nil {
		return nil, err
	}
	if command != CommandInitialize {
		return nil, ErrInvalidInstructionData
	}

	if len(i.Accounts) != initializeAccountCount {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(i.Accounts[2].PublicKey, SYSVAR_RENT_PUBKEY) {
		return nil, ErrInvalidInstructionData
	}
	if !bytes.Equal(i.Accounts[3].PublicKey, SYSTEM_PROGRAM_ID) {
		return nil, ErrInvalidInstructionData
	}

	return &InitializeInstructionAccounts{
		Payer:  i.Accounts[0].PublicKey,
		Record: i.Accounts[1].PublicKey,
	}, nil
}

// UpdateInstructionFromBinary reconstructs the Update account references from
// a compiled instruction.
func UpdateInstructionFromBinary(i solana.Instruction) (*UpdateInstructionAccounts, error) {
	if !bytes.Equal(i.Program, PROGRAM_ID) {
		return nil, ErrInvalidProgram
	}

	command, err := CommandFromBinary(i.Data)
	if err != nil {
		return nil, err
	}
	if command != CommandUpdate {
		return nil, ErrInvalidInstructionData
	}

	if len(i.Accounts) != updateAccountCount {
		return nil, ErrInvalidInstructionData
	}

	return &UpdateInstructionAccounts{
		Payer:  i.Accounts[0].PublicKey,
		Record: i.Accounts[1].PublicKey,
	}, nil
}

// CommandFromBinary reads the discriminant off an instruction buffer.
func CommandFromBinary(data []byte) (Command, error) {
	if len(data) != InstructionDataSize {
		return 0, ErrInvalidInstructionData
	}

	command := Command(data[0])
	switch command {
	case CommandInitialize, CommandUpdate:
		return command, nil
	default:
		return 0, ErrInvalidInstructionData
	}
}

func (c Command) String() string {
	switch c {
	case CommandInitialize:
		return "initialize"
	case CommandUpdate:
		return "update"
	}
	return "unknown"
}
