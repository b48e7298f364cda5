package fpsensor

import (
	"context"
	"fmt"

	"github.com/cwichel/fpsensor/protocol"
)

// Transfer directions as reported in TransferProgress and TransferError.
const (
	directionDownload = "download"
	directionUpload   = "upload"
)

// receiveStream drains one bulk data stream from the sensor: data packets
// are accumulated until a single end-of-data packet closes the stream.
// Any other packet kind, a corrupt frame, or a timeout fails the transfer
// and discards everything accumulated so far. Caller holds the handle lock
// and has already consumed the command acknowledgement.
func (s *Sensor) receiveStream(ctx context.Context, op string) ([]byte, error) {
	fail := func(packets int, err error) ([]byte, error) {
		s.reader.discard()
		return nil, &TransferError{Operation: op, Direction: directionDownload, Packets: packets, Err: err}
	}

	var acc []byte
	packets := 0
	for {
		if err := ctx.Err(); err != nil {
			return fail(packets, fmt.Errorf("cancelled: %w", err))
		}

		// Strict mode: a damaged mid-stream packet must fail the whole
		// transfer, not be resynchronized over, or the result would be
		// a silently shortened payload.
		pkt, err := s.reader.NextStrict(s.config.ReadTimeout)
		if err != nil {
			return fail(packets, err)
		}
		if pkt.Address != s.config.Address {
			return fail(packets, fmt.Errorf("packet addressed to 0x%08X, expected 0x%08X", pkt.Address, s.config.Address))
		}

		switch pkt.Kind {
		case protocol.KindData:
			acc = append(acc, pkt.Payload...)
			packets++
			s.reportTransfer(TransferProgress{
				Operation: op,
				Direction: directionDownload,
				Packets:   packets,
				Bytes:     len(acc),
			})

		case protocol.KindEndOfData:
			acc = append(acc, pkt.Payload...)
			packets++
			s.reportTransfer(TransferProgress{
				Operation: op,
				Direction: directionDownload,
				Packets:   packets,
				Bytes:     len(acc),
				Done:      true,
			})
			s.logDebug("download complete", "operation", op, "packets", packets, "bytes", len(acc))
			return acc, nil

		default:
			return fail(packets, fmt.Errorf("unexpected %s packet in data stream", pkt.Kind))
		}
	}
}

// sendStream pushes data to the sensor as a bulk stream: consecutive
// chunks of the negotiated packet size, every chunk but the last of kind
// data, the last of kind end-of-data. When the input is empty or an exact
// multiple of the chunk size the terminal chunk is zero-length; it is
// still sent, since the end-of-data packet is what tells the sensor the
// stream is over. Chunks go out back-to-back; the protocol is reply-free
// mid-stream. Caller holds the handle lock.
func (s *Sensor) sendStream(ctx context.Context, op string, data []byte) error {
	chunkSize := s.config.PacketSize
	packets := 0
	sent := 0
	for {
		if err := ctx.Err(); err != nil {
			return &TransferError{Operation: op, Direction: directionUpload, Packets: packets, Err: fmt.Errorf("cancelled: %w", err)}
		}

		// Strictly less: an exact-multiple payload still emits a
		// zero-length terminal chunk.
		last := len(data) < chunkSize
		n := chunkSize
		kind := protocol.KindData
		if last {
			n = len(data)
			kind = protocol.KindEndOfData
		}

		pkt := protocol.Packet{Address: s.config.Address, Kind: kind, Payload: data[:n]}
		if err := s.link.Write(protocol.Encode(pkt)); err != nil {
			return &TransferError{Operation: op, Direction: directionUpload, Packets: packets, Err: err}
		}
		data = data[n:]
		packets++
		sent += n
		s.reportTransfer(TransferProgress{
			Operation: op,
			Direction: directionUpload,
			Packets:   packets,
			Bytes:     sent,
			Done:      last,
		})

		if last {
			s.logDebug("upload complete", "operation", op, "packets", packets, "bytes", sent)
			return nil
		}
	}
}

// reportTransfer calls the transfer callback if configured.
func (s *Sensor) reportTransfer(progress TransferProgress) {
	if s.config.TransferCallback != nil {
		s.config.TransferCallback(progress)
	}
}
