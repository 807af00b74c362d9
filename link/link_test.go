package link

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestEncodeKnownFrame(t *testing.T) {
	frame, err := Encode(ToRadio, ApiVersion)
	require.NoError(t, err)
	assert.Equal(t, []byte{'$', 'X', '<', 0, 1, 0, 0, 0, checksum([]byte{0, 1, 0, 0, 0})}, frame)
}

func TestCrc8DvbS2(t *testing.T) {
	// reference value of the DVB-S2 polynomial for "123456789"
	assert.Equal(t, byte(0xBC), checksum([]byte("123456789")))
}

func TestEncodeArgs(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeArgs(&buf, uint8(1), uint16(0x0302), int16(-2), uint32(0x07060504), "ab",
		CalibrationEntry{Mid: 1, SpanNeg: 2, SpanPos: 3}, [2]uint8{9, 8})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 0xFE, 0xFF, 4, 5, 6, 7, 'a', 'b', 1, 0, 2, 0, 3, 0, 9, 8}, buf.Bytes())

	err = EncodeArgs(&buf, 1.5)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cmd := uint16(rapid.IntRange(0, 0xFFFF).Draw(t, "cmd"))
		payload := rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(t, "payload")
		dir := rapid.SampledFrom([]Direction{ToRadio, FromRadio}).Draw(t, "dir")

		port := &bytes.Buffer{}
		l := New(port, quietLogger())
		_, err := l.write(dir, cmd, payload)
		require.NoError(t, err)

		fr, err := l.ReadFrame()
		require.NoError(t, err)
		assert.Equal(t, cmd, fr.Code)
		assert.Equal(t, dir, fr.Direction)
		assert.Equal(t, len(payload), len(fr.Payload))
		if len(payload) > 0 {
			assert.Equal(t, payload, fr.Payload)
		}
		assert.Equal(t, 0, port.Len())
	})
}

func TestReadFrameRejectsCorruption(t *testing.T) {
	frame, err := Encode(FromRadio, FirmwareVersion, FirmwareVersionData{2, 1, 7})
	require.NoError(t, err)

	for i := 3; i < len(frame); i++ {
		if i == 6 || i == 7 {
			// a corrupted length reads a different amount of bytes
			continue
		}
		corrupt := append([]byte(nil), frame...)
		corrupt[i] ^= 0x10

		l := New(bytes.NewBuffer(corrupt), quietLogger())
		_, err := l.ReadFrame()
		var perr *InvalidPacketError
		assert.True(t, errors.As(err, &perr), "byte %d: %v", i, err)
	}
}

func TestReadFrameHeaderErrors(t *testing.T) {
	cases := [][]byte{
		[]byte("#X<"),
		[]byte("$X?"),
		[]byte("$M<"),
		[]byte("$Q>"),
		{'$', 'X', '>', 0, 1, 0, 0xFF, 0xFF},
	}
	for _, c := range cases {
		l := New(bytes.NewBuffer(c), quietLogger())
		_, err := l.ReadFrame()
		var perr *InvalidPacketError
		assert.True(t, errors.As(err, &perr), "%q: %v", c, err)
	}

	l := New(bytes.NewBufferString("$X>\x00"), quietLogger())
	_, err := l.ReadFrame()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestFrameRead(t *testing.T) {
	frame, err := Encode(FromRadio, Calibration, uint8(2),
		[]CalibrationEntry{{Mid: 512, SpanNeg: -384, SpanPos: 384}, {Mid: 1, SpanNeg: 2, SpanPos: 3}})
	require.NoError(t, err)

	l := New(bytes.NewBuffer(frame), quietLogger())
	fr, err := l.ReadFrame()
	require.NoError(t, err)

	var count uint8
	require.NoError(t, fr.Read(&count))
	entries := make([]CalibrationEntry, count)
	require.NoError(t, fr.Read(entries))
	assert.Equal(t, CalibrationEntry{Mid: 512, SpanNeg: -384, SpanPos: 384}, entries[0])
	assert.Equal(t, int16(3), entries[1].SpanPos)
	assert.Equal(t, 0, fr.BytesRemaining())

	var extra uint16
	assert.ErrorIs(t, fr.Read(&extra), io.ErrUnexpectedEOF)
	assert.Error(t, fr.Read(extra))
}

func TestReadBoardAndBuildInfo(t *testing.T) {
	fr := &Frame{Payload: []byte("X9D+\x01\x00\x00\x00")}
	var info BoardInfoData
	require.NoError(t, fr.Read(&info))
	assert.Equal(t, "X9D+", string(info.ID[:]))
	assert.Equal(t, uint16(1), info.HWRevision)

	fr = &Frame{Payload: []byte("Oct 14 202612:30:01abc1234")}
	build, err := fr.ReadBuildInfo()
	require.NoError(t, err)
	assert.Equal(t, BuildInfoData{Date: "Oct 14 2026", Time: "12:30:01", Revision: "abc1234"}, build)

	fr = &Frame{Payload: []byte("Oct")}
	_, err = fr.ReadBuildInfo()
	assert.Error(t, err)
}
