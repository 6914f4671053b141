package dshot

import "fmt"

// Command is a DSHOT special command code (1..47).
type Command uint8

// Commands 1..14: beeps, ESC info, spin direction, 3D mode, settings and extended telemetry.
const (
	CmdBeep1 Command = iota + 1
	CmdBeep2
	CmdBeep3
	CmdBeep4
	CmdBeep5
	CmdESCInfo
	CmdSpinDirection1
	CmdSpinDirection2
	Cmd3DModeOff
	Cmd3DModeOn
	CmdSettingsRequest
	CmdSaveSettings
	CmdExtendedTelemetryEnable
	CmdExtendedTelemetryDisable
)

// Commands 20..35: persistent spin direction, LEDs, audio/silent modes and signal line telemetry.
const (
	CmdSpinDirectionNormal Command = iota + 20
	CmdSpinDirectionReversed
	CmdLED0On
	CmdLED1On
	CmdLED2On
	CmdLED3On
	CmdLED0Off
	CmdLED1Off
	CmdLED2Off
	CmdLED3Off
	CmdAudioStreamModeToggle
	CmdSilentModeToggle
	CmdSignalLineTelemetryDisable
	CmdSignalLineTelemetryEnable
	CmdSignalLineContinuousERPMTelemetry
	CmdSignalLineContinuousERPMPeriodTelemetry
)

// Commands 42..47: single-shot signal line telemetry requests.
const (
	CmdSignalLineTemperatureTelemetry Command = iota + 42
	CmdSignalLineVoltageTelemetry
	CmdSignalLineCurrentTelemetry
	CmdSignalLineConsumptionTelemetry
	CmdSignalLineERPMTelemetry
	CmdSignalLineERPMPeriodTelemetry
)

var commandNames = map[Command]string{
	CmdBeep1:                                   "BEEP1",
	CmdBeep2:                                   "BEEP2",
	CmdBeep3:                                   "BEEP3",
	CmdBeep4:                                   "BEEP4",
	CmdBeep5:                                   "BEEP5",
	CmdESCInfo:                                 "ESC_INFO",
	CmdSpinDirection1:                          "SPIN_DIRECTION_1",
	CmdSpinDirection2:                          "SPIN_DIRECTION_2",
	Cmd3DModeOff:                               "3D_MODE_OFF",
	Cmd3DModeOn:                                "3D_MODE_ON",
	CmdSettingsRequest:                         "SETTINGS_REQUEST",
	CmdSaveSettings:                            "SAVE_SETTINGS",
	CmdExtendedTelemetryEnable:                 "EXTENDED_TELEMETRY_ENABLE",
	CmdExtendedTelemetryDisable:                "EXTENDED_TELEMETRY_DISABLE",
	CmdSpinDirectionNormal:                     "SPIN_DIRECTION_NORMAL",
	CmdSpinDirectionReversed:                   "SPIN_DIRECTION_REVERSED",
	CmdLED0On:                                  "LED0_ON",
	CmdLED1On:                                  "LED1_ON",
	CmdLED2On:                                  "LED2_ON",
	CmdLED3On:                                  "LED3_ON",
	CmdLED0Off:                                 "LED0_OFF",
	CmdLED1Off:                                 "LED1_OFF",
	CmdLED2Off:                                 "LED2_OFF",
	CmdLED3Off:                                 "LED3_OFF",
	CmdAudioStreamModeToggle:                   "AUDIO_STREAM_MODE_ON_OFF",
	CmdSilentModeToggle:                        "SILENT_MODE_ON_OFF",
	CmdSignalLineTelemetryDisable:              "SIGNAL_LINE_TELEMETRY_DISABLE",
	CmdSignalLineTelemetryEnable:               "SIGNAL_LINE_TELEMETRY_ENABLE",
	CmdSignalLineContinuousERPMTelemetry:       "SIGNAL_LINE_CONTINUOUS_ERPM_TELEMETRY",
	CmdSignalLineContinuousERPMPeriodTelemetry: "SIGNAL_LINE_CONTINUOUS_ERPM_PERIOD_TELEMETRY",
	CmdSignalLineTemperatureTelemetry:          "SIGNAL_LINE_TEMPERATURE_TELEMETRY",
	CmdSignalLineVoltageTelemetry:              "SIGNAL_LINE_VOLTAGE_TELEMETRY",
	CmdSignalLineCurrentTelemetry:              "SIGNAL_LINE_CURRENT_TELEMETRY",
	CmdSignalLineConsumptionTelemetry:          "SIGNAL_LINE_CONSUMPTION_TELEMETRY",
	CmdSignalLineERPMTelemetry:                 "SIGNAL_LINE_ERPM_TELEMETRY",
	CmdSignalLineERPMPeriodTelemetry:           "SIGNAL_LINE_ERPM_PERIOD_TELEMETRY",
}

// String returns the command name, or a numbered placeholder for unassigned codes.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CMD_%d", uint8(c))
}
