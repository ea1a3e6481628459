package record

import (
	"crypto/ed25519"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/record-program/pkg/solana"
	"github.com/code-payments/record-program/pkg/testutil"
)

const initialPayerLamports = 1_000_000

type testEnv struct {
	bank      *testutil.Bank
	processor *Processor
	payer     *solana.Account
	record    *solana.Account
}

func setup(t *testing.T) *testEnv {
	bank := testutil.NewBank()

	payerKey := testutil.GenerateSolanaKeys(t, 1)[0]
	payer := bank.FundAccount(payerKey, initialPayerLamports)
	payer.IsSigner = true
	payer.IsWritable = true

	address, _, err := GetRecordAddress(&GetRecordAddressArgs{Payer: payerKey})
	require.NoError(t, err)

	record := bank.Account(address)
	record.IsWritable = true

	return &testEnv{
		bank:      bank,
		processor: NewProcessor(bank, bank),
		payer:     payer,
		record:    record,
	}
}

func (env *testEnv) initializeAccounts() []*solana.Account {
	return []*solana.Account{
		env.payer,
		env.record,
		env.bank.Account(SYSVAR_RENT_PUBKEY),
		env.bank.Account(SYSTEM_PROGRAM_ID),
	}
}

func (env *testEnv) updateAccounts() []*solana.Account {
	return []*solana.Account{env.payer, env.record}
}

func snapshot(account *solana.Account) []byte {
	return append([]byte{}, account.Data...)
}

func TestProcessor_Initialize(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.Process(env.initializeAccounts(), []byte{0x00}))

	// [01, <32-byte payer key>, 01, 00*32, 00 00 00 00]
	expected := make([]byte, 0, RecordAccountSize)
	expected = append(expected, 1)
	expected = append(expected, env.payer.Key...)
	expected = append(expected, 1)
	expected = append(expected, make([]byte, 36)...)
	assert.Equal(t, expected, env.record.Data)

	assert.EqualValues(t, PROGRAM_ID, env.record.Owner)

	rent := env.bank.MinimumBalance(RecordAccountSize)
	assert.EqualValues(t, rent, env.record.Lamports)
	assert.EqualValues(t, initialPayerLamports-rent, env.payer.Lamports)

	var state RecordAccount
	require.NoError(t, state.Unmarshal(env.record.Data))
	assert.True(t, state.IsInitialized)
	assert.EqualValues(t, env.payer.Key, state.Owner)
	assert.Equal(t, RecordStateInitialized, state.State)
	assert.EqualValues(t, 0, state.UpdateCount)
}

func TestProcessor_Initialize_AlreadyInitialized(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.Process(env.initializeAccounts(), []byte{0x00}))
	before := snapshot(env.record)

	err := env.processor.Process(env.initializeAccounts(), []byte{0x00})
	assert.Equal(t, ErrInvalidInstructionData, err)
	assert.Equal(t, before, env.record.Data)
}

func TestProcessor_Initialize_PdaMismatch(t *testing.T) {
	env := setup(t)

	wrong := env.bank.Account(testutil.GenerateSolanaKeys(t, 1)[0])
	wrong.IsWritable = true

	accounts := env.initializeAccounts()
	accounts[1] = wrong

	err := env.processor.Process(accounts, []byte{0x00})
	assert.Equal(t, ErrPdaMismatch, err)

	// No account was created.
	assert.Empty(t, wrong.Data)
	assert.EqualValues(t, initialPayerLamports, env.payer.Lamports)
}

func TestProcessor_Initialize_Validation(t *testing.T) {
	t.Run("wrong arity", func(t *testing.T) {
		env := setup(t)
		err := env.processor.Process(env.initializeAccounts()[:3], []byte{0x00})
		assert.Equal(t, ErrInvalidInstructionData, err)
	})

	t.Run("missing signature", func(t *testing.T) {
		env := setup(t)
		env.payer.IsSigner = false
		err := env.processor.Process(env.initializeAccounts(), []byte{0x00})
		assert.Equal(t, ErrInvalidInstructionData, err)
	})

	t.Run("payer not writable", func(t *testing.T) {
		env := setup(t)
		env.payer.IsWritable = false
		err := env.processor.Process(env.initializeAccounts(), []byte{0x00})
		assert.Equal(t, ErrInvalidInstructionData, err)
	})

	t.Run("record not writable", func(t *testing.T) {
		env := setup(t)
		env.record.IsWritable = false
		err := env.processor.Process(env.initializeAccounts(), []byte{0x00})
		assert.Equal(t, ErrInvalidInstructionData, err)
	})

	t.Run("wrong rent sysvar", func(t *testing.T) {
		env := setup(t)
		accounts := env.initializeAccounts()
		accounts[2] = env.bank.Account(testutil.GenerateSolanaKeys(t, 1)[0])
		err := env.processor.Process(accounts, []byte{0x00})
		assert.Equal(t, ErrInvalidInstructionData, err)
	})

	t.Run("wrong system program", func(t *testing.T) {
		env := setup(t)
		accounts := env.initializeAccounts()
		accounts[3] = env.bank.Account(testutil.GenerateSolanaKeys(t, 1)[0])
		err := env.processor.Process(accounts, []byte{0x00})
		assert.Equal(t, ErrInvalidInstructionData, err)
	})
}

func TestProcessor_Update(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.Process(env.initializeAccounts(), []byte{0x00}))
	before := snapshot(env.record)

	require.NoError(t, env.processor.Process(env.updateAccounts(), []byte{0x01}))

	// Identical except the state byte and the counter.
	assert.Equal(t, before[:33], env.record.Data[:33])
	assert.EqualValues(t, 2, env.record.Data[33])
	assert.Equal(t, before[34:66], env.record.Data[34:66])
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, env.record.Data[66:70])

	for i := 0; i < 5; i++ {
		require.NoError(t, env.processor.Process(env.updateAccounts(), []byte{0x01}))
	}

	var state RecordAccount
	require.NoError(t, state.Unmarshal(env.record.Data))
	assert.Equal(t, RecordStateUpdated, state.State)
	assert.EqualValues(t, 6, state.UpdateCount)
	assert.EqualValues(t, env.payer.Key, state.Owner)
}

func TestProcessor_Update_Validation(t *testing.T) {
	initialized := func(t *testing.T) (*testEnv, []byte) {
		env := setup(t)
		require.NoError(t, env.processor.Process(env.initializeAccounts(), []byte{0x00}))
		return env, snapshot(env.record)
	}

	t.Run("too few accounts", func(t *testing.T) {
		env, before := initialized(t)
		err := env.processor.Process(env.updateAccounts()[:1], []byte{0x01})
		assert.Equal(t, ErrInvalidInstructionData, err)
		assert.Equal(t, before, env.record.Data)
	})

	t.Run("too many accounts", func(t *testing.T) {
		env, before := initialized(t)
		accounts := append(env.updateAccounts(), env.bank.Account(SYSVAR_RENT_PUBKEY))
		err := env.processor.Process(accounts, []byte{0x01})
		assert.Equal(t, ErrInvalidInstructionData, err)
		assert.Equal(t, before, env.record.Data)
	})

	t.Run("missing signature", func(t *testing.T) {
		env, before := initialized(t)
		env.payer.IsSigner = false
		err := env.processor.Process(env.updateAccounts(), []byte{0x01})
		assert.Equal(t, ErrInvalidInstructionData, err)
		assert.Equal(t, before, env.record.Data)
	})

	t.Run("payer not writable", func(t *testing.T) {
		env, before := initialized(t)
		env.payer.IsWritable = false
		err := env.processor.Process(env.updateAccounts(), []byte{0x01})
		assert.Equal(t, ErrInvalidInstructionData, err)
		assert.Equal(t, before, env.record.Data)
	})

	t.Run("record not writable", func(t *testing.T) {
		env, before := initialized(t)
		env.record.IsWritable = false
		err := env.processor.Process(env.updateAccounts(), []byte{0x01})
		assert.Equal(t, ErrInvalidInstructionData, err)
		assert.Equal(t, before, env.record.Data)
	})
}

func TestProcessor_Update_InvalidOwner(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.Process(env.initializeAccounts(), []byte{0x00}))
	before := snapshot(env.record)

	other := env.bank.FundAccount(testutil.GenerateSolanaKeys(t, 1)[0], initialPayerLamports)
	other.IsSigner = true
	other.IsWritable = true

	err := env.processor.Process([]*solana.Account{other, env.record}, []byte{0x01})
	assert.Equal(t, ErrInvalidOwner, err)
	assert.Equal(t, before, env.record.Data)
}

func TestProcessor_Update_BeforeInitialize(t *testing.T) {
	env := setup(t)

	// The record account was never created, so it isn't owned by the
	// program yet.
	err := env.processor.Process(env.updateAccounts(), []byte{0x01})
	assert.Equal(t, ErrInvalidOwner, err)
	assert.Empty(t, env.record.Data)
}

func TestProcessor_Update_UninitializedRecord(t *testing.T) {
	env := setup(t)

	state := RecordAccount{
		IsInitialized: false,
		Owner:         env.payer.Key,
		State:         RecordStateUninitialized,
	}
	env.record.Data = state.Marshal()
	env.record.Owner = PROGRAM_ID

	err := env.processor.Process(env.updateAccounts(), []byte{0x01})
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestProcessor_Update_CountSaturates(t *testing.T) {
	env := setup(t)

	require.NoError(t, env.processor.Process(env.initializeAccounts(), []byte{0x00}))

	var state RecordAccount
	require.NoError(t, state.Unmarshal(env.record.Data))
	state.UpdateCount = math.MaxUint32
	copy(env.record.Data, state.Marshal())

	require.NoError(t, env.processor.Process(env.updateAccounts(), []byte{0x01}))

	require.NoError(t, state.Unmarshal(env.record.Data))
	assert.EqualValues(t, uint32(math.MaxUint32), state.UpdateCount)
	assert.Equal(t, RecordStateUpdated, state.State)
}

func TestProcessor_UnknownCommand(t *testing.T) {
	env := setup(t)

	for _, data := range [][]byte{
		nil,
		{},
		{0x02},
		{0xff},
		{0x00, 0x01},
	} {
		err := env.processor.Process(env.initializeAccounts(), data)
		assert.Equal(t, ErrInvalidInstructionData, err, "data: %v", data)
	}

	assert.Empty(t, env.record.Data)
	assert.EqualValues(t, initialPayerLamports, env.payer.Lamports)
}

func TestWriteRecord_Overflow(t *testing.T) {
	state := &RecordAccount{
		IsInitialized: true,
		Owner:         make([]byte, ed25519.PublicKeySize),
		State:         RecordStateInitialized,
	}

	account := &solana.Account{
		Data: make([]byte, RecordAccountSize-1),
	}

	assert.Equal(t, ErrWriteOverflow, writeRecord(account, state))
}
