package model

// VaultFile represents the on-disk .vault container
type VaultFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// VaultData represents decrypted vault contents
type VaultData struct {
	PrivateKey []byte `json:"privateKey"` // 64-byte key (stored as base64 in JSON)
	CreatedAt  string `json:"createdAt"`
}
