package fpsensor

import (
	"errors"
	"time"

	"github.com/cwichel/fpsensor/protocol"
	"github.com/cwichel/fpsensor/transport"
)

// readChunk is the per-read buffer size against the transport. One maximum
// frame fits in a single read on a well-behaved link.
const readChunk = protocol.MaxFrameSize

// packetReader turns the transport's raw byte stream into decoded packets.
// It buffers partial input across calls and resynchronizes on the start
// marker after corruption, so the link recovers from a timeout that left
// the byte stream at an undefined position.
type packetReader struct {
	link transport.Transport
	buf  []byte
}

func newPacketReader(link transport.Transport) *packetReader {
	return &packetReader{link: link}
}

// Next returns the next packet from the link, discarding garbage and
// corrupt frames until a valid packet decodes or the timeout budget runs
// out. The budget spans all underlying reads of the call: a slow trickle
// of bytes cannot defeat it.
func (r *packetReader) Next(timeout time.Duration) (*protocol.Packet, error) {
	return r.next(timeout, false)
}

// NextStrict is Next without corruption recovery: the first corrupt frame
// aborts the call with the *protocol.CorruptError. Bulk transfers use this
// mode, where a damaged mid-stream packet must fail the whole transfer
// rather than be silently skipped.
func (r *packetReader) NextStrict(timeout time.Duration) (*protocol.Packet, error) {
	return r.next(timeout, true)
}

func (r *packetReader) next(timeout time.Duration, strict bool) (*protocol.Packet, error) {
	deadline := time.Now().Add(timeout)
	for {
		pkt, n, err := protocol.Decode(r.buf)
		if err == nil {
			r.buf = append(r.buf[:0], r.buf[n:]...)
			return pkt, nil
		}

		var corrupt *protocol.CorruptError
		if errors.As(err, &corrupt) {
			if strict {
				return nil, corrupt
			}
			drop := corrupt.Discard
			if drop < 1 {
				drop = 1
			}
			if drop > len(r.buf) {
				drop = len(r.buf)
			}
			r.buf = append(r.buf[:0], r.buf[drop:]...)
			if time.Now().Before(deadline) {
				continue
			}
			return nil, transport.ErrTimeout
		}

		// Incomplete frame: pull more bytes within the remaining budget.
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, transport.ErrTimeout
		}
		tmp := make([]byte, readChunk)
		got, rerr := r.link.Read(tmp, remaining)
		if got > 0 {
			r.buf = append(r.buf, tmp[:got]...)
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}

// discard drops any buffered bytes. Used when abandoning a transaction so
// stale bytes from the failed exchange do not alias the next response.
func (r *packetReader) discard() {
	r.buf = r.buf[:0]
}
