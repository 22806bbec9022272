package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// WalletSource identifies which ledger a token belongs to.
type WalletSource string

const (
	// WalletSourceStore is the locally owned store ledger (stk_ tokens).
	WalletSourceStore WalletSource = "store_wallet"
	// WalletSourcePersonal is the user agent's delegated wallet, reachable
	// only through an external settlement call (wtk_ tokens).
	WalletSourcePersonal WalletSource = "personal_wallet"
	WalletSourceUnknown  WalletSource = "unknown"
)

// Token namespace prefixes.
const (
	StoreTokenPrefix    = "stk_"
	PersonalTokenPrefix = "wtk_"
)

// SourceOfToken routes a wallet token to its owning ledger by prefix.
func SourceOfToken(token string) WalletSource {
	switch {
	case strings.HasPrefix(token, StoreTokenPrefix):
		return WalletSourceStore
	case strings.HasPrefix(token, PersonalTokenPrefix):
		return WalletSourcePersonal
	default:
		return WalletSourceUnknown
	}
}

// WalletAccount is a named balance account. Balance is mutated only through
// the ledger and never goes negative.
type WalletAccount struct {
	WalletID  string    `json:"wallet_id"`
	OwnerID   string    `json:"owner_id"`
	Balance   int64     `json:"balance"` // minor units
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanDebit reports whether the account holds at least amount.
func (w *WalletAccount) CanDebit(amount int64) bool {
	return w.Balance >= amount
}

// WalletToken is a one-time capability authorizing exactly one debit against
// a specific wallet. Consumed exactly once.
type WalletToken struct {
	Token     string     `json:"token"`
	WalletID  string     `json:"wallet_id"`
	OwnerID   string     `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Used      bool       `json:"used"`
}

// NewStoreToken mints a fresh store-namespace token value.
func NewStoreToken() string {
	return StoreTokenPrefix + randomHex(16)
}

// Expired reports whether the token has lapsed at the given instant.
// Tokens without an expiry never lapse.
func (t *WalletToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

func randomHex(n int) string {
	s := strings.ReplaceAll(uuid.New().String(), "-", "")
	if n > len(s) {
		n = len(s)
	}
	return s[:n]
}
