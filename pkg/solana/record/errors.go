package record

import (
	"errors"
)

var (
	// ErrInvalidProgram indicates an instruction or account referenced a
	// program other than this one.
	ErrInvalidProgram = errors.New("invalid program id")

	// ErrInvalidAccountData indicates a record account's data could not be
	// deserialized (wrong size or an unknown state byte).
	ErrInvalidAccountData = errors.New("unexpected account data")

	// ErrInvalidInstructionData indicates a malformed discriminant, wrong
	// account arity, a missing signature or writable flag, or an
	// initialization precondition violation.
	ErrInvalidInstructionData = errors.New("unexpected instruction data")

	// ErrPdaMismatch indicates the record account supplied to Initialize is
	// not at the program derived address for the payer.
	ErrPdaMismatch = errors.New("record account is not the derived address")

	// ErrInvalidOwner indicates the record account is not owned by this
	// program, or its stored owner does not match the signer.
	ErrInvalidOwner = errors.New("invalid record owner")

	// ErrWriteOverflow indicates an encoded record would not fit in the
	// account's data region. Unreachable with the fixed layout, but checked
	// before every write.
	ErrWriteOverflow = errors.New("write exceeds record capacity")
)
