package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripThinkTags(t *testing.T) {
	in := "<think>chain of\nthought</think>\n[]"
	assert.Equal(t, "[]", StripThinkTags(in))

	assert.Equal(t, "plain", StripThinkTags("plain"))
}

func TestParseDecisions(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		decisions, err := ParseDecisions(`[{"action":"BUY","pair":"XLM/USDC","target_price":0.105,"confidence":75,"reasoning":"momentum"}]`)
		require.NoError(t, err)
		require.Len(t, decisions, 1)
		assert.Equal(t, "BUY", decisions[0].Action)
		assert.Equal(t, "XLM/USDC", decisions[0].Pair)
		assert.InDelta(t, 0.105, decisions[0].TargetPrice, 1e-9)
		assert.Equal(t, 75, decisions[0].Confidence)
	})

	t.Run("markdown fenced array", func(t *testing.T) {
		decisions, err := ParseDecisions("```json\n[{\"action\":\"SELL\",\"pair\":\"XLM/USDC\",\"confidence\":80}]\n```")
		require.NoError(t, err)
		require.Len(t, decisions, 1)
		assert.Equal(t, "SELL", decisions[0].Action)
	})

	t.Run("single object", func(t *testing.T) {
		decisions, err := ParseDecisions(`{"action":"HOLD","pair":"XLM/USDC","confidence":50}`)
		require.NoError(t, err)
		require.Len(t, decisions, 1)
		assert.Equal(t, "HOLD", decisions[0].Action)
	})

	t.Run("think tags before array", func(t *testing.T) {
		decisions, err := ParseDecisions("<think>weighing volume</think>[{\"action\":\"BUY\",\"pair\":\"XLM/USDC\",\"confidence\":72}]")
		require.NoError(t, err)
		require.Len(t, decisions, 1)
	})

	t.Run("array embedded in prose", func(t *testing.T) {
		decisions, err := ParseDecisions("Here are my decisions: [{\"action\":\"BUY\",\"pair\":\"XLM/USDC\",\"confidence\":90}] good luck")
		require.NoError(t, err)
		require.Len(t, decisions, 1)
	})

	t.Run("empty array means no decisions", func(t *testing.T) {
		decisions, err := ParseDecisions("[]")
		require.NoError(t, err)
		assert.Empty(t, decisions)
	})

	t.Run("empty after stripping", func(t *testing.T) {
		decisions, err := ParseDecisions("<think>nothing to do</think>")
		require.NoError(t, err)
		assert.Empty(t, decisions)
	})

	t.Run("garbage is an error", func(t *testing.T) {
		_, err := ParseDecisions("I cannot answer that")
		assert.Error(t, err)
	})

	t.Run("actions and pairs are normalized", func(t *testing.T) {
		decisions, err := ParseDecisions(`[{"action":" buy ","pair":" XLM/USDC ","confidence":180}]`)
		require.NoError(t, err)
		require.Len(t, decisions, 1)
		assert.Equal(t, "BUY", decisions[0].Action)
		assert.Equal(t, "XLM/USDC", decisions[0].Pair)
		assert.Equal(t, 100, decisions[0].Confidence)
	})

	t.Run("decisions without a pair are dropped", func(t *testing.T) {
		decisions, err := ParseDecisions(`[
			{"action":"BUY","pair":"","confidence":90},
			{"action":"SELL","pair":"XLM/AQUA","confidence":-5}
		]`)
		require.NoError(t, err)
		require.Len(t, decisions, 1)
		assert.Equal(t, "XLM/AQUA", decisions[0].Pair)
		assert.Equal(t, 0, decisions[0].Confidence)
	})
}
