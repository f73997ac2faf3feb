package commander

import "encoding/binary"

// Endpoint identifies a logical sub-channel on the controller. Endpoints keep
// no state between sessions: they must be opened before a read or write and
// closed afterwards, and the controller does not tolerate opening an already
// open endpoint.
type Endpoint byte

const (
	// EndpointFanState reports the speed of all connected fans.
	EndpointFanState Endpoint = 0x17
	// EndpointFanPWM gets or sets the PWM of one or multiple fans by id.
	EndpointFanPWM Endpoint = 0x18
	// EndpointFans reports the number of supported fans and the connection
	// state of each.
	EndpointFans Endpoint = 0x1a
	// EndpointTemps reports the number of supported temperature sensors and
	// the temperature of each connected sensor.
	EndpointTemps Endpoint = 0x21
)

const (
	// OutReportSize and InReportSize are fixed by the controller; every
	// outbound report carries exactly OutReportSize bytes and every inbound
	// report is expected to carry exactly InReportSize bytes.
	OutReportSize = 385
	InReportSize  = 384

	cmdHeaderSize   = 2
	writeHeaderSize = 4

	channelCountIndex = 5
	channelDataOffset = 6

	fanStateConnected = 0x07

	// NumFans and NumTempSensors are the channel maximums handled by this
	// driver, independent of the theoretical count the controller reports.
	NumFans           = 6
	NumTempSensors    = 2
	NumVoltageSensors = 3
)

// Firmware version response carries four bytes, the patch version uses two.
var cmdGetFirmware = []byte{0x02, 0x13}

var (
	cmdHardwareMode  = []byte{0x01, 0x03, 0x00, 0x01}
	cmdSoftwareMode  = []byte{0x01, 0x03, 0x00, 0x02}
	cmdOpenEndpoint  = []byte{0x0d, 0x01}
	cmdCloseEndpoint = []byte{0x05, 0x01, 0x01}
	cmdWrite         = []byte{0x06, 0x01}
	cmdRead          = []byte{0x08, 0x01}

	dataTypeSetSpeed = []byte{0x07, 0x00}
)

// prepareCmd zeroes buf, writes the two-byte report header and copies the
// opcode right after it. Returns the used length.
func prepareCmd(buf []byte, opcode []byte) int {
	for i := range buf {
		buf[i] = 0x00
	}
	buf[0] = 0x00
	buf[1] = 0x08
	copy(buf[cmdHeaderSize:], opcode)
	return cmdHeaderSize + len(opcode)
}

// prepareEndpointCmd prepares an opcode addressed to a single endpoint.
func prepareEndpointCmd(buf []byte, opcode []byte, endpoint Endpoint) int {
	n := prepareCmd(buf, opcode)
	buf[n] = byte(endpoint)
	return n + 1
}

// prepareWriteCmd prepares the write opcode followed by a 4-byte write header
// whose first byte carries the combined data length, the data type tag and
// the payload. All defined write operations are small and fixed in size, so
// the buffer cannot overflow.
func prepareWriteCmd(buf []byte, dataType, data []byte) int {
	n := prepareCmd(buf, cmdWrite)
	buf[n] = byte(len(dataType) + len(data))
	n += writeHeaderSize
	n += copy(buf[n:], dataType)
	n += copy(buf[n:], data)
	return n
}

// response is a read-only view over a full inbound report exposing the
// documented payload offsets. Accessors bound-check against the buffer;
// they assume the status byte was already validated.
type response struct {
	buf []byte
}

func (r response) status() byte {
	return r.buf[0]
}

// channelCount is the theoretical number of channels the controller supports
// for the endpoint that produced this response.
func (r response) channelCount() int {
	return int(r.buf[channelCountIndex])
}

// stateAt returns the connection-state byte of a discovery response, one byte
// per channel.
func (r response) stateAt(channel int) (byte, bool) {
	i := channelDataOffset + channel
	if channel < 0 || i >= len(r.buf) {
		return 0, false
	}
	return r.buf[i], true
}

// rpmAt returns the signed 16-bit fan speed, two bytes per channel. Negative
// values are legal and meaningful.
func (r response) rpmAt(channel int) (int16, bool) {
	i := channelDataOffset + channel*2
	if channel < 0 || i+1 >= len(r.buf) {
		return 0, false
	}
	return int16(binary.LittleEndian.Uint16(r.buf[i : i+2])), true
}

// pwmAt returns the echoed channel id and the raw PWM on the controller's
// 0-100 scale, four bytes per channel.
func (r response) pwmAt(channel int) (id, raw byte, ok bool) {
	i := channelDataOffset + channel*4
	if channel < 0 || i+3 >= len(r.buf) {
		return 0, 0, false
	}
	return r.buf[i], r.buf[i+2], true
}

func (r response) firmware() FirmwareVersion {
	return FirmwareVersion{
		Major: r.buf[3],
		Minor: r.buf[4],
		Patch: binary.LittleEndian.Uint16(r.buf[5:7]),
	}
}
