package fpsensor

import (
	"fmt"
)

// TransferError indicates that a bulk data transfer failed partway.
// Data accumulated before the failure is discarded: callers never receive
// a partial image or template that could be mistaken for a complete one.
type TransferError struct {
	// Operation is the command that started the transfer
	Operation string

	// Direction is "download" or "upload"
	Direction string

	// Packets is the number of data packets processed before the failure
	Packets int

	// Err is the underlying failure: a transport error, a
	// *protocol.CorruptError, or an unexpected-packet error
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: %s failed after %d packets: %v", e.Operation, e.Direction, e.Packets, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// ResponseError indicates a structurally valid packet that does not fit the
// transaction: wrong packet kind where an acknowledgement was expected, or
// an address not matching the sensor this handle talks to.
type ResponseError struct {
	// Operation is the command awaiting the response
	Operation string

	// Reason describes the violation
	Reason string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s", e.Operation, e.Reason)
}
