package commander

import "context"

// readEndpoint runs a full read session against an endpoint: close (the
// controller rejects opening an endpoint that is already open), open, read,
// then close again. The read response is copied into the data buffer before
// the trailing close overwrites the shared response buffer. A failed exchange
// aborts the sequence immediately, so the endpoint may be left open on error
// paths. Caller must hold d.mu.
func (d *Device) readEndpoint(ctx context.Context, endpoint Endpoint) error {
	prepareEndpointCmd(d.cmdBuf[:], cmdCloseEndpoint, endpoint)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}

	prepareEndpointCmd(d.cmdBuf[:], cmdOpenEndpoint, endpoint)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}

	prepareEndpointCmd(d.cmdBuf[:], cmdRead, endpoint)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}

	copy(d.dataBuf[:], d.respBuf[:])
	d.dataRecvSize = d.recvSize

	prepareEndpointCmd(d.cmdBuf[:], cmdCloseEndpoint, endpoint)
	return d.sendAndWait(ctx)
}

// writeEndpoint runs a full write session against an endpoint, with the same
// close/open/operate/close shape and the same short-circuit behavior as
// readEndpoint. Caller must hold d.mu.
func (d *Device) writeEndpoint(ctx context.Context, endpoint Endpoint, dataType, data []byte) error {
	prepareEndpointCmd(d.cmdBuf[:], cmdCloseEndpoint, endpoint)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}

	prepareEndpointCmd(d.cmdBuf[:], cmdOpenEndpoint, endpoint)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}

	prepareWriteCmd(d.cmdBuf[:], dataType, data)
	if err := d.sendAndWait(ctx); err != nil {
		return err
	}

	copy(d.dataBuf[:], d.respBuf[:])
	d.dataRecvSize = d.recvSize

	prepareEndpointCmd(d.cmdBuf[:], cmdCloseEndpoint, endpoint)
	return d.sendAndWait(ctx)
}
