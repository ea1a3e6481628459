package record

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/record-program/pkg/solana"
)

// Processor executes record program instructions against the account
// snapshot supplied by the host for a single invocation.
//
// Every invocation is a pure function of (instruction bytes, account
// snapshot). An error return means the host discards all writes from the
// invocation, so handlers perform every check before the single copy into
// the record account.
type Processor struct {
	log    *logrus.Entry
	rent   Rent
	system SystemProgram
}

func NewProcessor(rent Rent, system SystemProgram) *Processor {
	return &Processor{
		log:    logrus.StandardLogger().WithField("program", "record"),
		rent:   rent,
		system: system,
	}
}

// Process dispatches a single instruction. Byte 0 of data is the
// discriminant; any unknown value aborts the invocation.
func (p *Processor) Process(accounts []*solana.Account, data []byte) error {
	command, err := CommandFromBinary(data)
	if err != nil {
		p.log.WithError(err).Warn("rejecting malformed instruction data")
		return err
	}

	log := p.log.WithField("method", command.String())

	switch command {
	case CommandInitialize:
		err = p.initialize(accounts)
	case CommandUpdate:
		err = p.update(accounts)
	default:
		err = ErrInvalidInstructionData
	}

	if err != nil {
		log.WithError(err).Warn("instruction failed")
	}
	return err
}

func (p *Processor) initialize(accounts []*solana.Account) error {
	validated, err := validateInitializeAccounts(accounts)
	if err != nil {
		return err
	}

	lamports := p.rent.MinimumBalance(RecordAccountSize)
	if err := p.system.CreateAccount(
		validated.payer.Key,
		validated.record.Key,
		lamports,
		RecordAccountSize,
		PROGRAM_ID,
	); err != nil {
		return errors.Wrap(err, "failed to create record account")
	}

	state := &RecordAccount{
		IsInitialized: true,
		Owner:         validated.payer.Key,
		State:         RecordStateInitialized,
		UpdateCount:   0,
	}
	return writeRecord(validated.record, state)
}

func (p *Processor) update(accounts []*solana.Account) error {
	validated, err := validateUpdateAccounts(accounts)
	if err != nil {
		return err
	}

	state := validated.state
	state.State = RecordStateUpdated

	// The counter saturates rather than wrapping, so a record that has seen
	// the maximum number of updates keeps accepting them.
	if state.UpdateCount < math.MaxUint32 {
		state.UpdateCount++
	}

	return writeRecord(validated.record, state)
}

// writeRecord copies the encoded record into the account's data region in a
// single operation after all checks have passed.
func writeRecord(account *solana.Account, state *RecordAccount) error {
	data := state.Marshal()
	if len(data) > len(account.Data) {
		return ErrWriteOverflow
	}

	copy(account.Data, data)
	return nil
}
