package commander

import (
	"context"
	"fmt"
	"time"
)

// requestTimeout bounds a single report exchange.
const requestTimeout = 300 * time.Millisecond

// sendAndWait transmits the prepared command buffer and blocks until the next
// inbound report arrives, the timeout elapses or ctx is cancelled. The pending
// signal is re-armed under signalMu before the send, so a late report fulfilling
// a previous cycle cannot be mistaken for this one. Caller must hold d.mu.
func (d *Device) sendAndWait(ctx context.Context) error {
	d.signalMu.Lock()
	pending := make(chan struct{})
	d.pending = pending
	d.signalMu.Unlock()

	if err := d.transport.Send(d.cmdBuf[:]); err != nil {
		return fmt.Errorf("transport send: %w", err)
	}

	select {
	case <-pending:
	case <-time.After(requestTimeout):
		d.disarm(pending)
		return ErrTimedOut
	case <-ctx.Done():
		d.disarm(pending)
		return ctx.Err()
	}

	if d.recvSize != InReportSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedResponse, d.recvSize, InReportSize)
	}
	return statusErr(d.respBuf[0])
}

func (d *Device) disarm(pending chan struct{}) {
	d.signalMu.Lock()
	if d.pending == pending {
		d.pending = nil
	}
	d.signalMu.Unlock()
}

// handleReport is invoked by the transport's delivery goroutine for every
// inbound report. The report is captured only while a request is armed; it
// fulfills the signal at most once. Unsolicited reports are dropped: they
// belong to an abandoned request or to another consumer of the same raw
// transport, in which case a solicited response can occasionally be lost to
// that consumer and surface here as a timeout.
func (d *Device) handleReport(report []byte) {
	d.signalMu.Lock()
	defer d.signalMu.Unlock()
	if d.pending == nil {
		return
	}
	copy(d.respBuf[:], report)
	d.recvSize = len(report)
	close(d.pending)
	d.pending = nil
}
