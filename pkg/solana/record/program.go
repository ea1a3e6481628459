package record

import (
	"crypto/ed25519"
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("reCoy3LtRPhChvAKLPC4x4vYDB7wuck4Qi1gbQhskRR")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))

	SYSVAR_RENT_PUBKEY = ed25519.PublicKey(mustBase58Decode("SysvarRent111111111111111111111111111111111"))
)
