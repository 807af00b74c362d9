//go:build linux || darwin

package radio

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtu-nova/nova-companion/link"
)

func TestSerialPortOverPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	sp, err := OpenSerial(tty.Name(), 0)
	require.NoError(t, err)
	defer sp.Close()
	assert.Equal(t, tty.Name(), sp.Name())

	radioSide := link.New(ptmx, quietLogger())
	hostSide := link.New(sp, quietLogger())

	go func() {
		_, _ = radioSide.WriteReply(link.FirmwareVersion, link.FirmwareVersionData{Major: 2, Minor: 3, Patch: 10})
	}()
	fr, err := hostSide.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, uint16(link.FirmwareVersion), fr.Code)
	var v link.FirmwareVersionData
	require.NoError(t, fr.Read(&v))
	assert.Equal(t, link.FirmwareVersionData{Major: 2, Minor: 3, Patch: 10}, v)

	_, err = hostSide.WriteCmd(link.Reboot)
	require.NoError(t, err)
	want, err := link.Encode(link.ToRadio, link.Reboot)
	require.NoError(t, err)
	got := make([]byte, len(want))
	_, err = io.ReadFull(ptmx, got)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, sp.Reconnect(ctx))
}

func TestOpenSerialMissingDevice(t *testing.T) {
	_, err := OpenSerial("/dev/nova-companion-missing", DefaultBaud)
	assert.Error(t, err)
}

func TestReadAfterFailedReconnect(t *testing.T) {
	sp := &SerialPort{name: "/dev/nova-companion-missing", baud: DefaultBaud}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sp.Reconnect(ctx), context.Canceled)

	_, err := sp.Read(make([]byte, 4))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	_, err = sp.Write([]byte{1})
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.NoError(t, sp.Close())
}

func TestFailedReconnectKeepsPort(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	defer ptmx.Close()
	defer tty.Close()

	sp, err := OpenSerial(tty.Name(), 0)
	require.NoError(t, err)
	defer sp.Close()

	sp.name = "/dev/nova-companion-missing"
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, sp.Reconnect(ctx), context.DeadlineExceeded)

	_, err = sp.Write([]byte("ok"))
	require.NoError(t, err)
	got := make([]byte, 2)
	_, err = io.ReadFull(ptmx, got)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}
