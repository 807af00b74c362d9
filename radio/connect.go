package radio

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Reconnector is a port that can be reopened after the radio drops off
// the bus, like SerialPort.
type Reconnector interface {
	io.ReadWriteCloser
	Reconnect(ctx context.Context) error
}

// Connect starts a Radio on port and identifies it. If the connection
// is lost during identification, typically because the radio rebooted,
// the port is reopened and identification tried once more.
func Connect(ctx context.Context, port Reconnector, onFrame Callback, logger *logrus.Logger) (*Radio, Identity, error) {
	for attempt := 0; ; attempt++ {
		r := New(port, onFrame, logger)
		id, err := r.Identify(ctx)
		if err == nil {
			return r, id, nil
		}
		lost := r.Err()
		_ = r.Close()
		if lost == nil || attempt > 0 {
			return nil, Identity{}, err
		}

		logger.Warnf("Connection lost while identifying the radio (%v), reconnecting", lost)
		if err := port.Reconnect(ctx); err != nil {
			return nil, Identity{}, fmt.Errorf("reconnecting: %w", err)
		}
	}
}
