package output

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/BIwashi/dshotdecode/pkg/dshot"
)

var start = time.Date(2024, 5, 1, 12, 0, 0, 123456000, time.UTC)

func testFrames() []*dshot.Frame {
	end := start.Add(dshot.DShot600.FrameDuration())
	return []*dshot.Frame{
		{Kind: dshot.KindDisarmed, Start: start, End: end, CRC: dshot.CRCStatus{Pass: true}},
		{Kind: dshot.KindCommand, Start: start, End: end, Command: dshot.CmdBeep3, CRC: dshot.CRCStatus{Received: 2, Computed: 7}},
		{Kind: dshot.KindThrottle, Start: start, End: end, Throttle: 1000, Percent: 50.025012506253125, TelemetryRequest: true, CRC: dshot.CRCStatus{Received: 9, Computed: 9, Pass: true}},
	}
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTextWriter(&buf)
	for _, f := range testFrames() {
		require.NoError(t, w.WriteFrame("0x120", f))
	}
	require.Empty(t, buf.String())
	require.NoError(t, w.Close())

	require.Equal(t,
		"2024-05-01T12:00:00.123456Z 2024-05-01T12:00:00.123482656Z 0x120 DSHOT Disarmed, Tel-Req: No, Crc: 0 (Pass)\n"+
			"2024-05-01T12:00:00.123456Z 2024-05-01T12:00:00.123482656Z 0x120 DSHOT Command: 3 (BEEP3), Tel-Req: No, Crc: 2 (Fail)\n"+
			"2024-05-01T12:00:00.123456Z 2024-05-01T12:00:00.123482656Z 0x120 DSHOT Throttle: 1000 (50.03%), Tel-Req: Yes, Crc: 9 (Pass)\n",
		buf.String())
}

func TestCBORWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCBORWriter(&buf)
	require.NoError(t, err)
	for _, f := range testFrames() {
		require.NoError(t, w.WriteFrame("0x120", f))
	}
	require.NoError(t, w.Close())

	dec := cbor.NewDecoder(&buf)
	var records []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
	require.Len(t, records, 3)

	require.Equal(t, "disarmed", records[0].Kind)
	require.Nil(t, records[0].Command)
	require.Nil(t, records[0].Throttle)
	require.True(t, start.Equal(records[0].Start))

	require.Equal(t, "command", records[1].Kind)
	require.Equal(t, uint8(3), *records[1].Command)
	require.Equal(t, "BEEP3", records[1].CommandName)
	require.False(t, records[1].CRCOK)
	require.Equal(t, uint8(7), records[1].CRCComputed)

	require.Equal(t, "throttle", records[2].Kind)
	require.Equal(t, uint16(1000), *records[2].Throttle)
	require.InDelta(t, 50.025, *records[2].ThrottlePercent, 1e-3)
	require.True(t, records[2].TelemetryRequest)
	require.Equal(t, "0x120", records[2].Source)
}
