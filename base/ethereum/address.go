package ethereum

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account is a locally held secp256k1 key able to produce personal_sign signatures.
type Account struct {
	key     *ecdsa.PrivateKey
	Address common.Address
}

func NewAccount() (*Account, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &Account{key: key, Address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

// SignText returns the hex encoded personal_sign signature of message,
// the form accepted by RecoverMsgSigner.
func (a *Account) SignText(message []byte) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(message), a.key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}
