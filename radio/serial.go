package radio

import (
	"context"
	"io"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/tarm/serial"
)

const DefaultBaud = 115200

// SerialPort is a serial connection to a radio that can be reopened
// after the radio reboots or is unplugged.
type SerialPort struct {
	name string
	baud int
	p    atomic.Pointer[serial.Port]
}

func OpenSerial(name string, baud int) (*SerialPort, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	sp := &SerialPort{name: name, baud: baud}
	if err := sp.open(); err != nil {
		return nil, err
	}
	return sp, nil
}

func (sp *SerialPort) open() error {
	port, err := serial.OpenPort(&serial.Config{
		Name: sp.name,
		Baud: sp.baud,
	})
	if err != nil {
		return err
	}
	if old := sp.p.Swap(port); old != nil {
		_ = old.Close()
	}
	return nil
}

func (sp *SerialPort) Name() string {
	return sp.name
}

// Reconnect opens the port again once its device file is back. The
// previous handle stays in place until the new one is open.
func (sp *SerialPort) Reconnect(ctx context.Context) error {
	for {
		// Trying to connect on macOS when the port dev file is
		// not present would cause an USB hub reset.
		if sp.portIsPresent() {
			return sp.open()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (sp *SerialPort) portIsPresent() bool {
	if runtime.GOOS == "windows" {
		return true
	}
	_, err := os.Stat(sp.name)
	return err == nil
}

func (sp *SerialPort) Read(p []byte) (n int, err error) {
	port := sp.p.Load()
	if port == nil {
		return 0, io.ErrClosedPipe
	}
	return port.Read(p)
}

func (sp *SerialPort) Write(p []byte) (n int, err error) {
	port := sp.p.Load()
	if port == nil {
		return 0, io.ErrClosedPipe
	}
	return port.Write(p)
}

func (sp *SerialPort) Close() error {
	port := sp.p.Load()
	if port == nil {
		return nil
	}
	return port.Close()
}
