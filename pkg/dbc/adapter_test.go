package dbc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDBC = `VERSION ""

BU_: FC LOGGER

BO_ 288 DSHOT_M1: 6 LOGGER

BO_ 2566848513 DSHOT_M2: 6 LOGGER

BO_ 289 STATUS: 8 FC
`

func writeDBC(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logger.dbc")
	require.NoError(t, os.WriteFile(path, []byte(testDBC), 0o644))
	return path
}

func TestParseFile(t *testing.T) {
	messages, err := ParseFile(writeDBC(t))
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, Message{ID: 0x120, Name: "DSHOT_M1", Size: 6, Transmitter: "LOGGER"}, messages[0])
	require.Equal(t, uint32(0x18FF0001), messages[1].ID)
	require.True(t, messages[1].IsExtended)
}

func TestLookupMessage(t *testing.T) {
	path := writeDBC(t)

	m, err := LookupMessage(path, "DSHOT_M1")
	require.NoError(t, err)
	require.Equal(t, uint32(0x120), m.ID)
	require.False(t, m.IsExtended)

	_, err = LookupMessage(path, "STATUS")
	require.ErrorContains(t, err, "8 bytes")

	_, err = LookupMessage(path, "MISSING")
	require.ErrorContains(t, err, "not found")

	_, err = LookupMessage(filepath.Join(t.TempDir(), "none.dbc"), "DSHOT_M1")
	require.Error(t, err)
}
