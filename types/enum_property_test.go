package types

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type propVoice string

var propVoices = NewEnum("PropVoices", "voice",
	M("ASTERIA", propVoice("asteria")),
	M("LUNA", propVoice("luna")),
	M("ELEVEN_TURBO_V2_5", propVoice("eleven_turbo_v2_5")),
	M("TTS_1_HD", propVoice("tts-1-hd")),
)

// 属性: 任意大小写组合的成员名称都能规范化为同一成员。
func TestProperty_Enum_NameCaseInsensitive(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		members := propVoices.Members()
		m := members[rapid.IntRange(0, len(members)-1).Draw(rt, "member")]

		var b strings.Builder
		for _, r := range m.Name {
			switch {
			case rapid.Bool().Draw(rt, "lower"):
				b.WriteRune(unicode.ToLower(r))
			default:
				b.WriteRune(r)
			}
		}

		got, err := propVoices.Normalize(b.String())
		require.NoError(t, err)
		assert.Equal(t, m.Value, got)
	})
}

// 属性: 成员本身规范化后保持不变（幂等）。
func TestProperty_Enum_MemberIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := propVoices.Values()
		v := values[rapid.IntRange(0, len(values)-1).Draw(rt, "value")]

		once, err := propVoices.Normalize(v)
		require.NoError(t, err)
		twice, err := propVoices.Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, v, twice)
	})
}

// 属性: 不匹配任何成员名称的字符串一律返回 INVALID_ARGUMENT。
func TestProperty_Enum_UnknownRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(rt, "name")
		if _, ok := propVoices.Lookup(s); ok {
			rt.Skip("generated a valid name")
		}

		_, err := propVoices.Normalize(s)
		require.Error(t, err)
		assert.True(t, IsErrorCode(err, ErrInvalidArgument))
	})
}

// 属性: 成员名称前后带空白时不再是名称，返回 INVALID_ARGUMENT。
func TestProperty_Enum_PaddedNameRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		names := propVoices.Names()
		name := names[rapid.IntRange(0, len(names)-1).Draw(rt, "name")]
		pad := rapid.SampledFrom([]string{" ", "\t", "\n"}).Draw(rt, "pad")
		input := pad + name
		if rapid.Bool().Draw(rt, "trailing") {
			input = name + pad
		}

		_, err := propVoices.Normalize(input)
		require.Error(t, err)
		assert.True(t, IsErrorCode(err, ErrInvalidArgument))
	})
}
