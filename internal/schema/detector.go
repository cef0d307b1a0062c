// Package schema detects which column of a heterogeneous transaction
// dataset plays each semantic role (wallet, action, timestamp, asset).
package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"

	"defi-credit-lab/internal/domain"
)

// ErrNoWalletColumn is returned when no wallet identifier column can be
// detected. Scoring is impossible without one.
var ErrNoWalletColumn = errors.New("no wallet identifier column detected")

// sampleLimit bounds how many non-missing values per column are inspected
// during the wallet fallback scan.
const sampleLimit = 10

// Keyword sets per role, matched case-insensitively as substrings of column
// names. First matching column in dataset order wins; roles are resolved
// independently, so one column may serve several roles.
var (
	walletKeywords    = []string{"user", "wallet", "address", "from", "account"}
	actionKeywords    = []string{"action", "type", "event", "function"}
	timestampKeywords = []string{"timestamp", "time", "date", "block"}
	assetKeywords     = []string{"reserve", "asset", "token", "underlying"}
)

var (
	evmAddressPattern    = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	base58AddressPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
)

// Detect inspects column names (and, for the wallet role, sample values) and
// returns the role assignments. Missing action/timestamp/asset roles are
// non-fatal and degrade downstream features; a missing wallet role returns
// ErrNoWalletColumn wrapped with the available columns for diagnosis.
func Detect(ts *domain.TransactionSet) (domain.FieldMap, error) {
	fields := domain.FieldMap{
		Wallet:    matchKeyword(ts.Columns, walletKeywords),
		Action:    matchKeyword(ts.Columns, actionKeywords),
		Timestamp: matchKeyword(ts.Columns, timestampKeywords),
		Asset:     matchKeyword(ts.Columns, assetKeywords),
	}

	if fields.Wallet == "" {
		fields.Wallet = matchWalletByValue(ts)
	}
	if fields.Wallet == "" {
		return domain.FieldMap{}, fmt.Errorf("%w (columns: %s)",
			ErrNoWalletColumn, strings.Join(ts.Columns, ", "))
	}

	return fields, nil
}

// matchKeyword returns the first column whose lowercased name contains any
// of the keywords, or "" if none match.
func matchKeyword(columns []string, keywords []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return col
			}
		}
	}
	return ""
}

// matchWalletByValue scans sample values per column for address-like
// strings. First column with at least one match wins. This fallback applies
// to the wallet role only.
func matchWalletByValue(ts *domain.TransactionSet) string {
	for _, col := range ts.Columns {
		for _, v := range ts.SampleValues(col, sampleLimit) {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if IsWalletAddress(s) {
				return col
			}
		}
	}
	return ""
}

// IsWalletAddress reports whether s looks like a wallet address: a
// 0x-prefixed 40-hex-digit EVM address, or a base58 string decoding to a
// 32-byte ed25519 curve point (Solana-style public key).
func IsWalletAddress(s string) bool {
	s = strings.TrimSpace(s)
	if evmAddressPattern.MatchString(s) {
		return true
	}
	return isSolanaPubkey(s)
}

// isSolanaPubkey checks base58 syntax first to keep the decode path off
// ordinary strings, then requires a valid 32-byte curve point.
func isSolanaPubkey(s string) bool {
	if !base58AddressPattern.MatchString(s) {
		return false
	}
	decoded, err := base58.Decode(s)
	if err != nil || len(decoded) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
