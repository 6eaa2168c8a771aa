package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testModel string

var testModels = NewEnum("TestModels", "model",
	M("NOVA", testModel("nova")),
	M("NOVA_2", testModel("nova-2")),
	M("BASE", testModel("base")),
)

func TestEnum_NormalizeMember(t *testing.T) {
	t.Parallel()

	got, err := testModels.Normalize(testModel("nova-2"))
	require.NoError(t, err)
	assert.Equal(t, testModel("nova-2"), got)
}

func TestEnum_NormalizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  testModel
	}{
		{name: "upper", input: "NOVA_2", want: "nova-2"},
		{name: "lower", input: "nova_2", want: "nova-2"},
		{name: "mixed", input: "BaSe", want: "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testModels.Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnum_NormalizeUnknownName(t *testing.T) {
	t.Parallel()

	_, err := testModels.Normalize("whisper")
	require.Error(t, err)
	assert.Equal(t, ErrInvalidArgument, GetErrorCode(err))
	assert.Contains(t, err.Error(), "invalid model name: 'whisper'")
	assert.Contains(t, err.Error(), "TestModels")
	assert.Contains(t, err.Error(), "NOVA, NOVA_2, BASE")
}

func TestEnum_NormalizeRejectsNonNames(t *testing.T) {
	t.Parallel()

	// 只匹配成员名称：取值、"-" 写法与带空白的输入都不是名称
	for _, input := range []string{"nova-2", " nova ", "nova_2 ", "base\n", "NOVA 2"} {
		got, err := testModels.Normalize(input)
		require.Error(t, err, "input %q", input)
		assert.Equal(t, ErrInvalidArgument, GetErrorCode(err))
		assert.Contains(t, err.Error(), "invalid model name")
		assert.Empty(t, got)
	}

	_, err := testModels.NormalizeOr(" ", "base")
	assert.Equal(t, ErrInvalidArgument, GetErrorCode(err))
}

func TestEnum_NormalizeInvalidType(t *testing.T) {
	t.Parallel()

	for _, v := range []any{42, 3.14, nil, []string{"nova"}, testModel("nova-3")} {
		_, err := testModels.Normalize(v)
		require.Error(t, err, "value %v", v)
		assert.Equal(t, ErrInvalidArgument, GetErrorCode(err))
		assert.Contains(t, err.Error(), "invalid value type")
	}
}

func TestEnum_NormalizeOr(t *testing.T) {
	t.Parallel()

	got, err := testModels.NormalizeOr(nil, "base")
	require.NoError(t, err)
	assert.Equal(t, testModel("base"), got)

	got, err = testModels.NormalizeOr("", "base")
	require.NoError(t, err)
	assert.Equal(t, testModel("base"), got)

	got, err = testModels.NormalizeOr(testModel(""), "nova")
	require.NoError(t, err)
	assert.Equal(t, testModel("nova"), got)

	got, err = testModels.NormalizeOr("nova", "base")
	require.NoError(t, err)
	assert.Equal(t, testModel("nova"), got)

	_, err = testModels.NormalizeOr("bogus", "base")
	assert.Error(t, err)
}

func TestEnum_Helpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TestModels", testModels.TypeName())
	assert.Equal(t, "model", testModels.Kind())
	assert.Equal(t, 3, testModels.Len())
	assert.Equal(t, []string{"NOVA", "NOVA_2", "BASE"}, testModels.Names())
	assert.Equal(t, []testModel{"nova", "nova-2", "base"}, testModels.Values())
	assert.True(t, testModels.Contains("base"))
	assert.False(t, testModels.Contains("BASE"))

	name, ok := testModels.NameOf("nova-2")
	assert.True(t, ok)
	assert.Equal(t, "NOVA_2", name)

	_, ok = testModels.NameOf("missing")
	assert.False(t, ok)

	members := testModels.Members()
	members[0].Name = "CHANGED"
	assert.Equal(t, "NOVA", testModels.Names()[0])
}

func TestNewEnum_PanicsOnDuplicates(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewEnum("Dup", "voice", M("A", testModel("a")), M("a", testModel("b")))
	})
	assert.Panics(t, func() {
		NewEnum("Dup", "voice", M("A", testModel("a")), M("B", testModel("a")))
	})
}

func TestNormalize_FunctionForm(t *testing.T) {
	t.Parallel()

	got, err := Normalize(testModels, "base")
	require.NoError(t, err)
	assert.Equal(t, testModel("base"), got)
}
