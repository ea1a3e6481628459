package record

import (
	"crypto/ed25519"

	"github.com/code-payments/record-program/pkg/solana"
)

var (
	RecordStatePrefix = []byte("record_state")
)

type GetRecordAddressArgs struct {
	Payer ed25519.PublicKey
}

// GetRecordAddress derives the record account address for a payer. The bump
// is the canonical one found by walking down from 255.
func GetRecordAddress(args *GetRecordAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		RecordStatePrefix,
		args.Payer,
	)
}
