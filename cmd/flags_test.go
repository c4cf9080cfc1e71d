package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumFlag(t *testing.T) {
	t.Parallel()
	flag := newEnumFlag("foo", []string{"foo", "bar", "baz"})

	require.Equal(t, "foo", flag.String())
	require.Nil(t, flag.Set("bar"))
	require.Equal(t, "bar", flag.String())
	require.Equal(t, "{foo,bar,baz}", flag.Type())

	err := flag.Set("deadbeef")
	require.Error(t, err)
	require.Equal(t, "bar", flag.String())
}

func TestFormatFlagDefault(t *testing.T) {
	t.Parallel()
	flag := newFormatFlag(formatPretty, formatJSON)
	require.Equal(t, formatPretty, flag.String())
	require.Nil(t, flag.Set(formatJSON))
	require.Equal(t, formatJSON, flag.String())
}
