package horizon

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuer = "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"

func TestCreditAsset(t *testing.T) {
	t.Run("short code is alphanum4", func(t *testing.T) {
		a, err := CreditAsset("USDC", testIssuer)
		require.NoError(t, err)
		assert.Equal(t, AssetTypeCreditAlphanum4, a.Type)
		assert.Equal(t, "USDC", a.Code)
		assert.Equal(t, testIssuer, a.Issuer)
	})

	t.Run("long code is alphanum12", func(t *testing.T) {
		a, err := CreditAsset("MOBI12345678", testIssuer)
		require.NoError(t, err)
		assert.Equal(t, AssetTypeCreditAlphanum12, a.Type)
	})

	t.Run("five characters is alphanum12", func(t *testing.T) {
		a, err := CreditAsset("USDCX", testIssuer)
		require.NoError(t, err)
		assert.Equal(t, AssetTypeCreditAlphanum12, a.Type)
	})

	t.Run("empty code rejected", func(t *testing.T) {
		_, err := CreditAsset("", testIssuer)
		assert.Error(t, err)
	})

	t.Run("overlong code rejected", func(t *testing.T) {
		_, err := CreditAsset("THIRTEENCHARS", testIssuer)
		assert.Error(t, err)
	})
}

func TestParseAsset(t *testing.T) {
	t.Run("native", func(t *testing.T) {
		a, err := ParseAsset("native")
		require.NoError(t, err)
		assert.True(t, a.IsNative())
		assert.Equal(t, "native", a.String())
	})

	t.Run("XLM alias", func(t *testing.T) {
		a, err := ParseAsset("XLM")
		require.NoError(t, err)
		assert.True(t, a.IsNative())
	})

	t.Run("credit round-trips through String", func(t *testing.T) {
		a, err := ParseAsset("USDC:" + testIssuer)
		require.NoError(t, err)
		assert.Equal(t, AssetTypeCreditAlphanum4, a.Type)
		assert.Equal(t, "USDC:"+testIssuer, a.String())

		back, err := ParseAsset(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, back)
	})

	t.Run("missing issuer rejected", func(t *testing.T) {
		_, err := ParseAsset("USDC")
		assert.Error(t, err)

		_, err = ParseAsset("USDC:")
		assert.Error(t, err)
	})
}

func TestAssetAddToQuery(t *testing.T) {
	t.Run("native writes only the type key", func(t *testing.T) {
		v := url.Values{}
		NativeAsset().addToQuery(v, "base")

		assert.Equal(t, "native", v.Get("base_asset_type"))
		assert.False(t, v.Has("base_asset_code"))
		assert.False(t, v.Has("base_asset_issuer"))
	})

	t.Run("alphanum4 writes type, code and issuer", func(t *testing.T) {
		a, err := CreditAsset("USDC", testIssuer)
		require.NoError(t, err)

		v := url.Values{}
		a.addToQuery(v, "counter")

		assert.Equal(t, "credit_alphanum4", v.Get("counter_asset_type"))
		assert.Equal(t, "USDC", v.Get("counter_asset_code"))
		assert.Equal(t, testIssuer, v.Get("counter_asset_issuer"))
	})

	t.Run("alphanum12 writes type, code and issuer", func(t *testing.T) {
		a, err := CreditAsset("LONGCODE1234", testIssuer)
		require.NoError(t, err)

		v := url.Values{}
		a.addToQuery(v, "selling")

		assert.Equal(t, "credit_alphanum12", v.Get("selling_asset_type"))
		assert.Equal(t, "LONGCODE1234", v.Get("selling_asset_code"))
		assert.Equal(t, testIssuer, v.Get("selling_asset_issuer"))
	})
}

func TestAssetDisplayCode(t *testing.T) {
	assert.Equal(t, "XLM", NativeAsset().DisplayCode())

	a, err := CreditAsset("yUSDC", testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "yUSDC", a.DisplayCode())
}
