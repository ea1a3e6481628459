package record

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const PayloadSize = 32

// RecordAccountSize is the exact on-account byte length of a record. Any
// stored buffer of a different length is corrupt.
const RecordAccountSize = (1 + // is_initialized
	32 + // owner
	1 + // state
	PayloadSize + // payload
	4) // update_count

// RecordAccount is the persisted state of a single record.
//
// Owner is set once by Initialize and never changes. UpdateCount is bumped on
// every successful update and saturates at the maximum uint32 value. All
// multi-byte integers are little endian.
type RecordAccount struct {
	IsInitialized bool
	Owner         ed25519.PublicKey
	State         RecordState
	Payload       [PayloadSize]byte
	UpdateCount   uint32
}

// Marshal serializes the record into a fresh RecordAccountSize buffer.
func (obj *RecordAccount) Marshal() []byte {
	data := make([]byte, RecordAccountSize)

	var offset int

	putBool(data, obj.IsInitialized, &offset)
	putKey(data, obj.Owner, &offset)
	putRecordState(data, obj.State, &offset)
	putData(data, obj.Payload[:], &offset)
	putUint32(data, obj.UpdateCount, &offset)

	return data
}

// Unmarshal deserializes the record from the provided account data.
func (obj *RecordAccount) Unmarshal(data []byte) error {
	if len(data) != RecordAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	getBool(data, &obj.IsInitialized, &offset)
	getKey(data, &obj.Owner, &offset)
	getRecordState(data, &obj.State, &offset)
	if !obj.State.isValid() {
		return ErrInvalidAccountData
	}
	getData(data, obj.Payload[:], PayloadSize, &offset)
	getUint32(data, &obj.UpdateCount, &offset)

	return nil
}

func (obj *RecordAccount) String() string {
	return fmt.Sprintf(
		"RecordAccount{is_initialized=%t,owner=%s,state=%s,update_count=%d}",
		obj.IsInitialized,
		base58.Encode(obj.Owner),
		obj.State.String(),
		obj.UpdateCount,
	)
}
