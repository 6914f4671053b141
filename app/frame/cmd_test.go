package frame

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestFrameCommand(t *testing.T) {
	out, err := execute(t, "ffffffffffff", "0xDF:6D:F6:FF:FF:FF", "DBEFFFDBFFFE")
	require.NoError(t, err)
	require.Equal(t,
		"ffffffffffff word=0x0000 Disarmed, Tel-Req: No, Crc: 0 (Pass)\n"+
			"0xDF:6D:F6:FF:FF:FF word=0x00DD Command: 6 (ESC_INFO), Tel-Req: Yes, Crc: 13 (Pass)\n"+
			"DBEFFFDBFFFE word=0x830B Throttle: 1000 (50.03%), Tel-Req: No, Crc: 11 (Pass)\n",
		out)
}

func TestFrameCommandLegacy(t *testing.T) {
	out, err := execute(t, "--legacy", "000000000000")
	require.NoError(t, err)
	require.Equal(t, "000000000000 word=0xFFFF Throttle: 2047 (100.00%), Tel-Req: Yes, Crc: 15 (Pass)\n", out)
}

func TestFrameCommandErrors(t *testing.T) {
	out, err := execute(t, "ffffffffff", "ffffffffffff")
	require.ErrorContains(t, err, "1 of 2 captures")
	require.Contains(t, out, "Disarmed")

	_, err = execute(t, "zz")
	require.Error(t, err)

	_, err = execute(t)
	require.Error(t, err)
}
