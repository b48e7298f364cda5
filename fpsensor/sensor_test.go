package fpsensor

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cwichel/fpsensor/protocol"
	"github.com/cwichel/fpsensor/transport"
)

// MockLink simulates the sensor side of the serial link for testing.
// Queued chunks are handed out by successive Read calls; written frames
// are captured for inspection.
type MockLink struct {
	reads    [][]byte
	readIdx  int
	written  bytes.Buffer
	readErr  error
	writeErr error
	closed   bool
}

func NewMockLink() *MockLink {
	return &MockLink{}
}

func (m *MockLink) Read(p []byte, timeout time.Duration) (int, error) {
	if m.readIdx < len(m.reads) {
		chunk := m.reads[m.readIdx]
		n := copy(p, chunk)
		if n < len(chunk) {
			m.reads[m.readIdx] = chunk[n:]
		} else {
			m.readIdx++
		}
		return n, nil
	}
	if m.readErr != nil {
		return 0, m.readErr
	}
	return 0, transport.ErrTimeout
}

func (m *MockLink) Write(p []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.written.Write(p)
	return nil
}

func (m *MockLink) Close() error {
	m.closed = true
	return nil
}

// QueueBytes queues one raw chunk for a future Read call.
func (m *MockLink) QueueBytes(b []byte) {
	m.reads = append(m.reads, b)
}

// QueuePacket queues one encoded packet.
func (m *MockLink) QueuePacket(p protocol.Packet) {
	m.QueueBytes(protocol.Encode(p))
}

// QueueAck queues an acknowledgement with the given status and data.
func (m *MockLink) QueueAck(status protocol.StatusCode, data []byte) {
	payload := append([]byte{byte(status)}, data...)
	m.QueuePacket(protocol.Packet{Address: protocol.DefaultAddress, Kind: protocol.KindAck, Payload: payload})
}

// WrittenFrames decodes every frame written to the link.
func (m *MockLink) WrittenFrames(t *testing.T) []*protocol.Packet {
	t.Helper()
	var frames []*protocol.Packet
	buf := m.written.Bytes()
	for len(buf) > 0 {
		pkt, n, err := protocol.Decode(buf)
		if err != nil {
			t.Fatalf("written stream does not decode: %v", err)
		}
		frames = append(frames, pkt)
		buf = buf[n:]
	}
	return frames
}

// MockLogger records log messages for assertions.
type MockLogger struct {
	debugMsgs []string
	infoMsgs  []string
	errorMsgs []string
}

func (l *MockLogger) Debug(msg string, kv ...interface{}) {
	l.debugMsgs = append(l.debugMsgs, msg)
}

func (l *MockLogger) Info(msg string, kv ...interface{}) {
	l.infoMsgs = append(l.infoMsgs, msg)
}

func (l *MockLogger) Error(msg string, kv ...interface{}) {
	l.errorMsgs = append(l.errorMsgs, msg)
}

func TestNewPanicsOnNilLink(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(nil) did not panic")
		}
	}()
	New(nil)
}

func TestStoreTemplateWiresExactFrame(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, nil)
	sensor := New(link)

	if err := sensor.StoreTemplate(context.Background(), 3); err != nil {
		t.Fatalf("StoreTemplate() error = %v", err)
	}

	want := []byte{
		0xEF, 0x01,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x01,
		0x00, 0x02,
		0x06, 0x03,
		0x04, 0x08,
	}
	if !bytes.Equal(link.written.Bytes(), want) {
		t.Errorf("wrote % X, want % X", link.written.Bytes(), want)
	}
}

func TestSensorErrorSurfacesNamedStatus(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusNoFinger, nil)
	sensor := New(link)

	err := sensor.CaptureImage(context.Background())
	var serr *protocol.SensorError
	if !errors.As(err, &serr) {
		t.Fatalf("CaptureImage() error = %v, want *protocol.SensorError", err)
	}
	if serr.Status != protocol.StatusNoFinger {
		t.Errorf("Status = 0x%02X, want StatusNoFinger", byte(serr.Status))
	}
}

func TestVerifyPassword(t *testing.T) {
	tests := []struct {
		name       string
		status     protocol.StatusCode
		wantStatus protocol.StatusCode
		wantErr    bool
	}{
		{
			name:   "accepted",
			status: protocol.StatusSuccess,
		},
		{
			name:       "rejected",
			status:     protocol.StatusBadPassword,
			wantStatus: protocol.StatusBadPassword,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := NewMockLink()
			link.QueueAck(tt.status, nil)
			sensor := New(link, WithPassword(0x12345678))

			err := sensor.VerifyPassword(context.Background())
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("VerifyPassword() error = %v", err)
				}
				frames := link.WrittenFrames(t)
				wantPayload := []byte{0x13, 0x12, 0x34, 0x56, 0x78}
				if !bytes.Equal(frames[0].Payload, wantPayload) {
					t.Errorf("payload = % X, want % X", frames[0].Payload, wantPayload)
				}
				return
			}

			var serr *protocol.SensorError
			if !errors.As(err, &serr) || serr.Status != tt.wantStatus {
				t.Errorf("VerifyPassword() error = %v, want SensorError with 0x%02X", err, byte(tt.wantStatus))
			}
		})
	}
}

func TestHandshake(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusHandshakeOK, nil)
	sensor := New(link)

	if err := sensor.Handshake(context.Background()); err != nil {
		t.Errorf("Handshake() error = %v", err)
	}
}

func TestMatch(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, []byte{0x01, 0x2C})
	sensor := New(link)

	score, err := sensor.Match(context.Background())
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if score != 300 {
		t.Errorf("score = %d, want 300", score)
	}
}

func TestSearch(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		link := NewMockLink()
		link.QueueAck(protocol.StatusSuccess, []byte{0x07, 0x00, 0x64})
		sensor := New(link)

		result, err := sensor.Search(context.Background(), protocol.Buffer1, 0, 200)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if result.Index != 7 || result.Score != 100 {
			t.Errorf("result = %+v, want index 7 score 100", result)
		}
	})

	t.Run("not found", func(t *testing.T) {
		link := NewMockLink()
		link.QueueAck(protocol.StatusNotFound, nil)
		sensor := New(link)

		_, err := sensor.Search(context.Background(), protocol.Buffer1, 0, 200)
		var serr *protocol.SensorError
		if !errors.As(err, &serr) || serr.Status != protocol.StatusNotFound {
			t.Errorf("Search() error = %v, want SensorError with StatusNotFound", err)
		}
	})

	t.Run("invalid buffer rejected locally", func(t *testing.T) {
		link := NewMockLink()
		sensor := New(link)

		if _, err := sensor.Search(context.Background(), protocol.BufferID(9), 0, 200); err == nil {
			t.Error("Search() with invalid buffer succeeded")
		}
		if link.written.Len() != 0 {
			t.Error("invalid command reached the wire")
		}
	})
}

func TestTemplateCount(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, []byte{0x00, 0x2A})
	sensor := New(link)

	count, err := sensor.TemplateCount(context.Background())
	if err != nil {
		t.Fatalf("TemplateCount() error = %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}
}

func TestReadParametersAdoptsPacketSize(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, []byte{
		0x00, 0x00,
		0x00, 0x09,
		0x00, 0xC8,
		0x00, 0x03,
		0xFF, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, // packet size code 0 (32 bytes)
		0x00, 0x06,
	})
	sensor := New(link)

	params, err := sensor.ReadParameters(context.Background())
	if err != nil {
		t.Fatalf("ReadParameters() error = %v", err)
	}
	if params.Capacity != 200 {
		t.Errorf("Capacity = %d, want 200", params.Capacity)
	}
	if sensor.config.PacketSize != 32 {
		t.Errorf("config.PacketSize = %d, want 32", sensor.config.PacketSize)
	}
}

func TestSetAddressAdoptsNewAddress(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, nil)
	// Second ack already stamped with the new address.
	link.QueueBytes(protocol.Encode(protocol.Packet{
		Address: 0x00000001,
		Kind:    protocol.KindAck,
		Payload: []byte{0x00},
	}))
	sensor := New(link)

	ctx := context.Background()
	if err := sensor.SetAddress(ctx, 0x00000001); err != nil {
		t.Fatalf("SetAddress() error = %v", err)
	}
	if err := sensor.CaptureImage(ctx); err != nil {
		t.Fatalf("CaptureImage() after SetAddress error = %v", err)
	}

	frames := link.WrittenFrames(t)
	if frames[1].Address != 0x00000001 {
		t.Errorf("second command address = 0x%08X, want 0x00000001", frames[1].Address)
	}
}

func TestAddressMismatchRejected(t *testing.T) {
	link := NewMockLink()
	link.QueueBytes(protocol.Encode(protocol.Packet{
		Address: 0x12345678,
		Kind:    protocol.KindAck,
		Payload: []byte{0x00},
	}))
	sensor := New(link)

	err := sensor.CaptureImage(context.Background())
	var rerr *ResponseError
	if !errors.As(err, &rerr) {
		t.Errorf("CaptureImage() error = %v, want *ResponseError", err)
	}
}

func TestTimeoutSurfaced(t *testing.T) {
	link := NewMockLink() // nothing queued: reads time out
	sensor := New(link, WithReadTimeout(20*time.Millisecond))

	err := sensor.EmptyDatabase(context.Background())
	if !errors.Is(err, transport.ErrTimeout) {
		t.Errorf("EmptyDatabase() error = %v, want wrapped transport.ErrTimeout", err)
	}
}

func TestCancelledContext(t *testing.T) {
	link := NewMockLink()
	sensor := New(link)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sensor.CaptureImage(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CaptureImage() error = %v, want wrapped context.Canceled", err)
	}
	if link.written.Len() != 0 {
		t.Error("cancelled command reached the wire")
	}
}

func TestRandomNumber(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	sensor := New(link)

	value, err := sensor.RandomNumber(context.Background())
	if err != nil {
		t.Fatalf("RandomNumber() error = %v", err)
	}
	if value != 0xDEADBEEF {
		t.Errorf("value = 0x%08X, want 0xDEADBEEF", value)
	}
}

func TestNotepadRoundTrip(t *testing.T) {
	page := bytes.Repeat([]byte{0x5A}, protocol.NotepadPageSize)

	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, nil)
	link.QueueAck(protocol.StatusSuccess, page)
	sensor := New(link)

	ctx := context.Background()
	if err := sensor.WriteNotepad(ctx, 2, page); err != nil {
		t.Fatalf("WriteNotepad() error = %v", err)
	}
	got, err := sensor.ReadNotepad(ctx, 2)
	if err != nil {
		t.Fatalf("ReadNotepad() error = %v", err)
	}
	if !bytes.Equal(got, page) {
		t.Errorf("ReadNotepad() = % X, want % X", got, page)
	}
}

func TestTemplateIndexTable(t *testing.T) {
	bitmap := make([]byte, protocol.IndexTablePageSize)
	bitmap[0] = 0x03 // slots 0 and 1

	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, bitmap)
	sensor := New(link)

	slots, err := sensor.TemplateIndexTable(context.Background(), 0)
	if err != nil {
		t.Fatalf("TemplateIndexTable() error = %v", err)
	}
	if !slots[0] || !slots[1] || slots[2] {
		t.Errorf("slots[0:3] = %v %v %v, want true true false", slots[0], slots[1], slots[2])
	}
}

func TestCallbackReentrancyPanics(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, nil)
	link.QueuePacket(protocol.Packet{
		Address: protocol.DefaultAddress,
		Kind:    protocol.KindEndOfData,
		Payload: []byte{0x01},
	})

	var sensor *Sensor
	sensor = New(link, WithTransferCallback(func(p TransferProgress) {
		// Issuing a command while the transfer is in flight is a
		// programming error and must trip the assertion.
		_ = sensor.CaptureImage(context.Background())
	}))

	defer func() {
		if recover() == nil {
			t.Error("re-entrant command during transfer did not panic")
		}
	}()
	_, _ = sensor.DownloadTemplate(context.Background(), protocol.Buffer1)
}

func TestConcurrentCallers(t *testing.T) {
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, nil)
	link.QueueAck(protocol.StatusSuccess, nil)
	sensor := New(link, WithReadTimeout(20*time.Millisecond))

	// Concurrent use is misuse; each caller either completes or trips the
	// in-flight assertion. Run under the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { _ = recover() }()
			_ = sensor.EmptyDatabase(context.Background())
		}()
	}
	wg.Wait()
}

func TestClose(t *testing.T) {
	link := NewMockLink()
	sensor := New(link)

	if err := sensor.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !link.closed {
		t.Error("Close() did not close the link")
	}
}

func TestLoggerReceivesMessages(t *testing.T) {
	logger := &MockLogger{}
	link := NewMockLink()
	link.QueueAck(protocol.StatusSuccess, nil)
	sensor := New(link, WithLogger(logger))

	if err := sensor.SetPassword(context.Background(), 0x00000001); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if len(logger.infoMsgs) == 0 {
		t.Error("no info messages logged for password change")
	}
	if len(logger.debugMsgs) == 0 {
		t.Error("no debug messages logged for the transaction")
	}
}
