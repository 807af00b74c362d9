// Package radio talks to a radio connected over a serial link: it
// identifies the firmware and board and moves settings to and from it.
package radio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gtu-nova/nova-companion/link"
)

type Callback func(fr link.Frame, r *Radio) error

// Radio represents a connection to a radio. Frames are read by a
// background loop started by New and dispatched to the callback
// registered for their command, or to the frame callback given to New.
// Call Close to stop the loop.
type Radio struct {
	link       *link.Link
	port       io.ReadWriteCloser
	logger     *logrus.Logger
	onFrame    Callback
	pollPeriod time.Duration
	closeChan  chan struct{}
	done       chan struct{}
	closeOnce  sync.Once

	mu          sync.Mutex
	callbackMap map[uint16]Callback
	pending     map[uint16]chan link.Frame
	err         error
}

// ErrClosed is returned by requests on a radio whose loop has stopped.
var ErrClosed = errors.New("radio connection closed")

// New returns a Radio reading frames from port. onFrame receives frames
// no other callback claimed and may be nil. Close closes port.
func New(port io.ReadWriteCloser, onFrame Callback, logger *logrus.Logger) *Radio {
	r := &Radio{
		link:        link.New(port, logger),
		port:        port,
		logger:      logger,
		onFrame:     onFrame,
		pollPeriod:  10 * time.Millisecond,
		closeChan:   make(chan struct{}),
		done:        make(chan struct{}),
		callbackMap: make(map[uint16]Callback),
		pending:     make(map[uint16]chan link.Frame),
	}
	r.AddCallback(link.DebugMsg, logDebugMsg)
	r.mainLoop()
	return r
}

func (r *Radio) AddCallback(msgId uint16, fn Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbackMap[msgId] = fn
}

func (r *Radio) AddCallbacks(msgIds []uint16, fns []Callback) {
	if len(msgIds) != len(fns) {
		panic("The ids slice and the functions slice are not equal")
	}

	for i, id := range msgIds {
		r.AddCallback(id, fns[i])
	}
}

func (r *Radio) WriteCmd(cmd uint16, args ...interface{}) (int, error) {
	return r.link.WriteCmd(cmd, args...)
}

// Close stops the read loop and closes the port to unblock a pending
// read.
func (r *Radio) Close() error {
	var err error
	r.closeOnce.Do(func() {
		close(r.closeChan)
		err = r.port.Close()
	})
	<-r.done
	return err
}

// Done is closed once the read loop has stopped.
func (r *Radio) Done() <-chan struct{} {
	return r.done
}

// Err returns the error that stopped the read loop, if any.
func (r *Radio) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Radio) closing() bool {
	select {
	case <-r.closeChan:
		return true
	default:
		return false
	}
}

func (r *Radio) mainLoop() {
	ticker := time.NewTicker(r.pollPeriod)

	go func() {
		defer close(r.done)
		defer ticker.Stop()
		defer r.logger.Debug("Main loop ended")
		for {
			select {
			case <-ticker.C:
				frame, err := r.link.ReadFrame()
				if err != nil {
					var perr *link.InvalidPacketError
					if errors.As(err, &perr) {
						r.logger.Warnf("Invalid packet (%v)", err)
						continue
					}
					if !r.closing() {
						r.logger.Errorf("Connection lost (%v)", err)
						r.mu.Lock()
						r.err = err
						r.mu.Unlock()
					}
					return
				}
				r.dispatch(*frame)
			case <-r.closeChan:
				return
			}
		}
	}()
}

func (r *Radio) dispatch(frame link.Frame) {
	r.mu.Lock()
	waiter, waiting := r.pending[frame.Code]
	if waiting {
		delete(r.pending, frame.Code)
	}
	callback, found := r.callbackMap[frame.Code]
	r.mu.Unlock()

	if waiting {
		waiter <- frame
		return
	}

	var err error
	switch {
	case found:
		err = callback(frame, r)
	case r.onFrame != nil:
		err = r.onFrame(frame, r)
	default:
		r.logger.Debugf("Unhandled frame %d with payload %v", frame.Code, frame.Payload)
	}
	if err != nil {
		r.logger.Errorf("Error in callback for message code %d (%v)", frame.Code, err)
	}
}

// Request sends cmd and waits for the radio's reply to it.
func (r *Radio) Request(ctx context.Context, cmd uint16, args ...interface{}) (link.Frame, error) {
	reply := make(chan link.Frame, 1)
	r.mu.Lock()
	r.pending[cmd] = reply
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.pending[cmd] == reply {
			delete(r.pending, cmd)
		}
		r.mu.Unlock()
	}()

	if _, err := r.WriteCmd(cmd, args...); err != nil {
		return link.Frame{}, fmt.Errorf("sending command %d: %w", cmd, err)
	}

	select {
	case fr := <-reply:
		return fr, nil
	case <-r.done:
		if err := r.Err(); err != nil {
			return link.Frame{}, fmt.Errorf("%w: %v", ErrClosed, err)
		}
		return link.Frame{}, ErrClosed
	case <-ctx.Done():
		return link.Frame{}, fmt.Errorf("waiting for reply to command %d: %w", cmd, ctx.Err())
	}
}

// Reboot asks the radio to restart. The link is usually lost after it.
func (r *Radio) Reboot() error {
	r.logger.Warn("Rebooting radio...")
	_, err := r.WriteCmd(link.Reboot)
	return err
}

func logDebugMsg(fr link.Frame, r *Radio) error {
	s := strings.Trim(string(fr.Payload), " \r\n\t\x00")
	r.logger.Debugf("[DEBUG] %s", s)
	return nil
}
