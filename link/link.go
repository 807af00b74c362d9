// Package link speaks the framed serial protocol of a connected radio.
//
// A frame is "$X", a direction char, a flags byte, the little endian
// command and payload length, the payload and a CRC8 (DVB-S2) over
// everything after the direction char.
package link

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"reflect"

	"github.com/sirupsen/logrus"
)

const (
	ApiVersion      = 1   //out message
	FirmwareVariant = 2   //out message    4 char firmware family code
	FirmwareVersion = 3   //out message    major, minor, patch
	BoardInfo       = 4   //out message    4 char board id, hw revision, target name
	BuildInfo       = 5   //out message    build date, time and revision
	Calibration     = 40  //out message    stick and pot calibration
	SetCalibration  = 41  //in message
	Reboot          = 68  //in message
	EepromWrite     = 250 //in message     no param
	DebugMsg        = 253 //out message    debug string buffer
)

// Direction is the third char of a frame header.
type Direction byte

const (
	ToRadio   Direction = '<'
	FromRadio Direction = '>'
)

// MaxPayload bounds the payload length a frame header may announce.
const MaxPayload = 4096

type InvalidPacketError struct{}

func (e *InvalidPacketError) Error() string {
	return "invalid packet"
}

// Encode builds a complete frame carrying args.
func Encode(dir Direction, cmd uint16, args ...interface{}) ([]byte, error) {
	var payload bytes.Buffer
	if err := EncodeArgs(&payload, args...); err != nil {
		return nil, err
	}
	return encodeFrame(dir, cmd, payload.Bytes()), nil
}

func encodeFrame(dir Direction, cmd uint16, payload []byte) []byte {
	leBuffer := make([]byte, 2)
	payloadLength := uint16(len(payload))

	var buf bytes.Buffer
	buf.WriteByte('$')
	buf.WriteByte('X')
	buf.WriteByte(byte(dir))
	buf.WriteByte(0)
	binary.LittleEndian.PutUint16(leBuffer, cmd)
	buf.Write(leBuffer)
	binary.LittleEndian.PutUint16(leBuffer, payloadLength)
	buf.Write(leBuffer)
	buf.Write(payload)

	buf.WriteByte(checksum(buf.Bytes()[3:]))
	return buf.Bytes()
}

func checksum(data []byte) byte {
	crc := byte(0)
	for _, v := range data {
		crc = crc8DvbS2(crc, v)
	}
	return crc
}

func crc8DvbS2(crc, a byte) byte {
	crc ^= a
	for ii := 0; ii < 8; ii++ {
		if (crc & 0x80) != 0 {
			crc = (crc << 1) ^ 0xD5
		} else {
			crc = crc << 1
		}
	}
	return crc
}

// EncodeArgs appends the little endian encoding of args. Structs,
// slices and arrays are encoded element by element; strings as their
// raw bytes.
func EncodeArgs(w *bytes.Buffer, args ...interface{}) error {
	for _, arg := range args {
		switch x := arg.(type) {
		case uint8:
			w.WriteByte(x)
		case int8:
			w.WriteByte(byte(x))
		case []byte:
			w.Write(x)
		case string:
			w.WriteString(x)
		case uint16, int16, uint32, int32:
			_ = binary.Write(w, binary.LittleEndian, x)
		default:
			v := reflect.ValueOf(arg)
			switch v.Kind() {
			case reflect.Slice, reflect.Array:
				for i := 0; i < v.Len(); i++ {
					if err := EncodeArgs(w, v.Index(i).Interface()); err != nil {
						return err
					}
				}
			case reflect.Struct:
				for i := 0; i < v.NumField(); i++ {
					if err := EncodeArgs(w, v.Field(i).Interface()); err != nil {
						return err
					}
				}
			default:
				return fmt.Errorf("can't encode value of type %T", arg)
			}
		}
	}
	return nil
}

type Frame struct {
	Code       uint16
	Direction  Direction
	Payload    []byte
	payloadPos int
}

// Reads out from the frame Payload and advances the payload
// position pointer by the size of the variable pointed by out.
func (f *Frame) Read(out interface{}) error {
	switch x := out.(type) {
	case *uint8:
		if f.BytesRemaining() < 1 {
			return io.ErrUnexpectedEOF
		}
		*x = f.Payload[f.payloadPos]
		f.payloadPos++
	case *int8:
		var u uint8
		if err := f.Read(&u); err != nil {
			return err
		}
		*x = int8(u)
	case *uint16:
		if f.BytesRemaining() < 2 {
			return io.ErrUnexpectedEOF
		}
		*x = binary.LittleEndian.Uint16(f.Payload[f.payloadPos:])
		f.payloadPos += 2
	case *int16:
		var u uint16
		if err := f.Read(&u); err != nil {
			return err
		}
		*x = int16(u)
	case *uint32:
		if f.BytesRemaining() < 4 {
			return io.ErrUnexpectedEOF
		}
		*x = binary.LittleEndian.Uint32(f.Payload[f.payloadPos:])
		f.payloadPos += 4
	default:
		v := reflect.ValueOf(out)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				if err := f.Read(v.Index(i).Addr().Interface()); err != nil {
					return err
				}
			}
			return nil
		}
		if v.Kind() != reflect.Ptr {
			return fmt.Errorf("can't decode payload into non pointer %T", out)
		}
		elem := v.Elem()
		switch elem.Kind() {
		case reflect.Struct:
			for i := 0; i < elem.NumField(); i++ {
				if err := f.Read(elem.Field(i).Addr().Interface()); err != nil {
					return err
				}
			}
		case reflect.Slice, reflect.Array:
			for i := 0; i < elem.Len(); i++ {
				if err := f.Read(elem.Index(i).Addr().Interface()); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("can't decode payload into type %T", out)
		}
	}
	return nil
}

// ReadString consumes n bytes as a string.
func (f *Frame) ReadString(n int) (string, error) {
	if n < 0 || f.BytesRemaining() < n {
		return "", io.ErrUnexpectedEOF
	}
	s := string(f.Payload[f.payloadPos : f.payloadPos+n])
	f.payloadPos += n
	return s, nil
}

func (f *Frame) BytesRemaining() int {
	return len(f.Payload) - f.payloadPos
}

// Link reads and writes frames on a port. It does not own the port.
type Link struct {
	Port   io.ReadWriter
	logger *logrus.Logger
}

func New(port io.ReadWriter, logger *logrus.Logger) *Link {
	return &Link{
		Port:   port,
		logger: logger,
	}
}

// WriteCmd sends a request to the radio.
func (l *Link) WriteCmd(cmd uint16, args ...interface{}) (int, error) {
	return l.write(ToRadio, cmd, args...)
}

// WriteReply sends a frame in the radio's direction, as a radio or a
// simulator of one does.
func (l *Link) WriteReply(cmd uint16, args ...interface{}) (int, error) {
	return l.write(FromRadio, cmd, args...)
}

func (l *Link) write(dir Direction, cmd uint16, args ...interface{}) (int, error) {
	frame, err := Encode(dir, cmd, args...)
	if err != nil {
		return -1, err
	}

	if l.logger.IsLevelEnabled(logrus.TraceLevel) {
		l.logger.Tracef("%c %s", dir, hex.EncodeToString(frame))
	}
	return l.Port.Write(frame)
}

// ReadFrame reads the next frame. Malformed frames return an error
// wrapping *InvalidPacketError; the stream stays usable after them.
func (l *Link) ReadFrame() (*Frame, error) {
	buf := make([]byte, 8)

	if _, err := io.ReadFull(l.Port, buf[0:3]); err != nil {
		return nil, err
	}

	if buf[0] != '$' {
		return nil, fmt.Errorf("invalid header char 0x%02x: %w", buf[0], &InvalidPacketError{})
	}

	dir := Direction(buf[2])
	if dir != ToRadio && dir != FromRadio {
		return nil, fmt.Errorf("invalid direction char 0x%02x: %w", buf[2], &InvalidPacketError{})
	}

	switch buf[1] {
	case 'M':
		return nil, fmt.Errorf("got V1 message, ignoring: %w", &InvalidPacketError{})
	case 'X':
		if _, err := io.ReadFull(l.Port, buf[3:]); err != nil {
			return nil, err
		}
		code := binary.LittleEndian.Uint16(buf[4:])
		payloadLength := binary.LittleEndian.Uint16(buf[6:])
		if payloadLength > MaxPayload {
			return nil, fmt.Errorf("payload length %d in cmd %d: %w", payloadLength, code, &InvalidPacketError{})
		}

		var payload []byte
		if payloadLength > 0 {
			payload = make([]byte, payloadLength)
			if _, err := io.ReadFull(l.Port, payload); err != nil {
				return nil, err
			}
		}
		buf = append(buf, payload...)

		sum := make([]byte, 1)
		if _, err := io.ReadFull(l.Port, sum); err != nil {
			return nil, err
		}

		if l.logger.IsLevelEnabled(logrus.TraceLevel) {
			l.logger.Tracef("%c %s%02x", dir, hex.EncodeToString(buf), sum[0])
		}

		if crc := checksum(buf[3:]); crc != sum[0] {
			return nil, fmt.Errorf("invalid CRC 0x%02x, expecting 0x%02x in cmd %v: %w",
				sum[0], crc, code, &InvalidPacketError{})
		}
		return &Frame{
			Code:      code,
			Direction: dir,
			Payload:   payload,
		}, nil
	default:
		return nil, fmt.Errorf("unknown protocol char %c: %w", buf[1], &InvalidPacketError{})
	}
}
