// Package signature recognizes the SysEx messages that identify a sound
// standard. Every matcher takes a reassembled payload (manufacturer or
// universal ID first, 0xF0 and 0xF7 excluded) and never panics on short input.
package signature

const (
	universalNonRealTime = 0x7E
	allDevices           = 0x7F
	subIDGeneralMIDI     = 0x09
	gm1On                = 0x01
	gm2On                = 0x03

	yamahaID    = 0x43
	xgModelID   = 0x4C
	xgDeviceMsk = 0xF0
	xgParamChg  = 0x10

	rolandID  = 0x41
	gsModelID = 0x42
	cmdDT1    = 0x12
)

var (
	gsResetBody = [4]byte{0x40, 0x00, 0x7F, 0x00}
)

func hasPrefix(payload []byte, prefix ...byte) bool {
	if len(payload) < len(prefix) {
		return false
	}
	for i, b := range prefix {
		if payload[i] != b {
			return false
		}
	}
	return true
}

// IsGM1SystemOn matches the universal "General MIDI System On" message.
func IsGM1SystemOn(payload []byte) bool {
	return hasPrefix(payload, universalNonRealTime, allDevices, subIDGeneralMIDI, gm1On)
}

// IsGM2SystemOn matches the universal "General MIDI 2 System On" message.
func IsGM2SystemOn(payload []byte) bool {
	return hasPrefix(payload, universalNonRealTime, allDevices, subIDGeneralMIDI, gm2On)
}

func isXGHeader(payload []byte) bool {
	return len(payload) >= 3 &&
		payload[0] == yamahaID &&
		payload[1]&xgDeviceMsk == xgParamChg &&
		payload[2] == xgModelID
}

// IsXGSystemOn matches XG System On (data 0x00) and XG All Parameter Reset
// (data 0x7F), both at address 00 00 7E/7F.
func IsXGSystemOn(payload []byte) bool {
	if len(payload) < 7 || !isXGHeader(payload) {
		return false
	}
	return payload[3] == 0x00 &&
		payload[4] == 0x00 &&
		(payload[5] == 0x7E || payload[5] == 0x7F) &&
		payload[6] == 0x00
}

// IsXGParameterChange matches any XG parameter change, so it also fires on
// every XG System On.
func IsXGParameterChange(payload []byte) bool {
	return isXGHeader(payload)
}

// IsGSDeviceID reports whether id is a Roland device ID GS files use:
// broadcast (0x7F) or one of the sixteen unit numbers 0x10-0x1F.
func IsGSDeviceID(id byte) bool {
	return id == 0x7F || (id >= 0x10 && id <= 0x1F)
}

// GSChecksum returns the Roland checksum for the address and data bytes.
func GSChecksum(body []byte) byte {
	var sum int
	for _, b := range body {
		sum += int(b)
	}
	return byte((128 - (sum & 0x7F)) & 0x7F)
}

func isGSDT1Header(payload []byte) bool {
	return len(payload) >= 4 &&
		payload[0] == rolandID &&
		IsGSDeviceID(payload[1]) &&
		payload[2] == gsModelID &&
		payload[3] == cmdDT1
}

// IsGSReset matches the GS Reset DT1 message, including its checksum.
func IsGSReset(payload []byte) bool {
	if len(payload) < 9 || !isGSDT1Header(payload) {
		return false
	}
	body := payload[4:8]
	for i, b := range gsResetBody {
		if body[i] != b {
			return false
		}
	}
	return payload[8] == GSChecksum(body)
}

// IsGSDataSet matches any GS DT1 (Data Set 1) message, so it also fires on
// every GS Reset.
func IsGSDataSet(payload []byte) bool {
	return isGSDT1Header(payload)
}

type matcher struct {
	name  string
	match func([]byte) bool
}

var matchers = []matcher{
	{"gm1-system-on", IsGM1SystemOn},
	{"gm2-system-on", IsGM2SystemOn},
	{"xg-system-on", IsXGSystemOn},
	{"xg-parameter-change", IsXGParameterChange},
	{"gs-reset", IsGSReset},
	{"gs-dt1", IsGSDataSet},
}

// Match returns the names of all matchers that accept payload.
func Match(payload []byte) []string {
	var res []string
	for _, m := range matchers {
		if m.match(payload) {
			res = append(res, m.name)
		}
	}
	return res
}
