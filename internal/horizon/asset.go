package horizon

import (
	"fmt"
	"net/url"
	"strings"
)

type AssetType string

const (
	AssetTypeNative           AssetType = "native"
	AssetTypeCreditAlphanum4  AssetType = "credit_alphanum4"
	AssetTypeCreditAlphanum12 AssetType = "credit_alphanum12"
)

// Asset identifies a Stellar asset. The zero Code/Issuer mean the native lumen.
// JSON tags match Horizon's response encoding.
type Asset struct {
	Type   AssetType `json:"asset_type"`
	Code   string    `json:"asset_code,omitempty"`
	Issuer string    `json:"asset_issuer,omitempty"`
}

func NativeAsset() Asset {
	return Asset{Type: AssetTypeNative}
}

func CreditAsset(code, issuer string) (Asset, error) {
	switch n := len(code); {
	case n >= 1 && n <= 4:
		return Asset{Type: AssetTypeCreditAlphanum4, Code: code, Issuer: issuer}, nil
	case n >= 5 && n <= 12:
		return Asset{Type: AssetTypeCreditAlphanum12, Code: code, Issuer: issuer}, nil
	default:
		return Asset{}, fmt.Errorf("asset code %q: length must be 1-12", code)
	}
}

// ParseAsset parses the canonical form used in config files:
// "native" or "CODE:ISSUER".
func ParseAsset(s string) (Asset, error) {
	if s == "native" || strings.EqualFold(s, "XLM") {
		return NativeAsset(), nil
	}

	code, issuer, ok := strings.Cut(s, ":")
	if !ok {
		return Asset{}, fmt.Errorf("asset %q: want \"native\" or \"CODE:ISSUER\"", s)
	}
	if issuer == "" {
		return Asset{}, fmt.Errorf("asset %q: empty issuer", s)
	}
	return CreditAsset(code, issuer)
}

func (a Asset) IsNative() bool {
	return a.Type == AssetTypeNative
}

// String returns the canonical form accepted by ParseAsset.
func (a Asset) String() string {
	if a.IsNative() {
		return "native"
	}
	return a.Code + ":" + a.Issuer
}

// DisplayCode is the short human-readable code for prompts and alerts.
func (a Asset) DisplayCode() string {
	if a.IsNative() {
		return "XLM"
	}
	return a.Code
}

// addToQuery writes the asset as Horizon query parameters under the given
// prefix ("base", "counter", "selling", "buying"). The native variant carries
// only the type key; credit variants add code and issuer.
func (a Asset) addToQuery(v url.Values, prefix string) {
	v.Set(prefix+"_asset_type", string(a.Type))
	if a.IsNative() {
		return
	}
	v.Set(prefix+"_asset_code", a.Code)
	v.Set(prefix+"_asset_issuer", a.Issuer)
}
