package fpsensor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwichel/fpsensor/protocol"
	"github.com/cwichel/fpsensor/transport"
)

// Sensor is the exclusive handle to one fingerprint sensor on one link.
//
// The link carries no transaction identifiers, so correctness depends on
// strict half-duplex discipline: exactly one command (plus any bulk stream
// it implies) is in flight at a time. The handle is not meant for
// concurrent use; callers needing one sensor from several goroutines must
// serialize externally. Issuing a command while another is in flight,
// whether from a transfer callback or from another goroutine, is a
// programming error and may panic.
//
// All operations block up to their configured timeout. A timeout or link
// error leaves the wire at an undefined position; the next operation
// recovers by resynchronizing on the start marker. Retrying a timed-out
// command is the caller's decision, never the handle's.
type Sensor struct {
	mu     sync.Mutex
	link   transport.Transport
	reader *packetReader
	config Config
	busy   atomic.Bool
}

// New creates a sensor handle over the given transport.
//
// Example:
//
//	link, err := transport.OpenSerial("/dev/ttyUSB0", 57600)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sensor := fpsensor.New(link,
//	    fpsensor.WithPassword(0x00000000),
//	    fpsensor.WithReadTimeout(2*time.Second),
//	)
func New(link transport.Transport, opts ...Option) *Sensor {
	if link == nil {
		panic("link cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Sensor{
		link:   link,
		reader: newPacketReader(link),
		config: cfg,
	}
}

// Close releases the underlying transport.
func (s *Sensor) Close() error {
	return s.link.Close()
}

// lock acquires the handle for one transaction and returns the release
// function. The busy flag is a tripwire for re-entry from a callback,
// which would otherwise deadlock on the mutex. It is atomic so the check
// is race-free when the tripwire fires under concurrent misuse instead.
func (s *Sensor) lock(op string) func() {
	if s.busy.Load() {
		panic(fmt.Sprintf("fpsensor: %s issued while another transaction is in flight on this handle", op))
	}
	s.mu.Lock()
	s.busy.Store(true)
	return func() {
		s.busy.Store(false)
		s.mu.Unlock()
	}
}

// transact performs one half-duplex exchange: write the command, await the
// acknowledgement, return its status byte and data. Caller holds the lock.
func (s *Sensor) transact(ctx context.Context, op string, cmd protocol.Packet, timeout time.Duration) (protocol.StatusCode, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, fmt.Errorf("cancelled: %w", err)
	}

	cmd.Address = s.config.Address
	if err := s.link.Write(protocol.Encode(cmd)); err != nil {
		return 0, nil, fmt.Errorf("write command: %w", err)
	}

	ack, err := s.reader.Next(timeout)
	if err != nil {
		s.reader.discard()
		return 0, nil, fmt.Errorf("read acknowledgement: %w", err)
	}
	if ack.Address != s.config.Address {
		s.reader.discard()
		return 0, nil, &ResponseError{
			Operation: op,
			Reason:    fmt.Sprintf("packet addressed to 0x%08X, expected 0x%08X", ack.Address, s.config.Address),
		}
	}

	status, data, err := protocol.ParseAck(ack)
	if err != nil {
		s.reader.discard()
		return 0, nil, &ResponseError{Operation: op, Reason: err.Error()}
	}

	s.logDebug("acknowledgement", "operation", op, "status", status.String())
	return status, data, nil
}

// simple runs a transaction whose acknowledgement carries only a status.
func (s *Sensor) simple(ctx context.Context, op string, cmd protocol.Packet) error {
	defer s.lock(op)()
	return s.statusOnly(ctx, op, cmd, s.config.ReadTimeout)
}

func (s *Sensor) statusOnly(ctx context.Context, op string, cmd protocol.Packet, timeout time.Duration) error {
	status, _, err := s.transact(ctx, op, cmd, timeout)
	if err != nil {
		return err
	}
	if status != protocol.StatusSuccess {
		return &protocol.SensorError{Operation: op, Status: status}
	}
	return nil
}

// VerifyPassword authenticates the host against the sensor using the
// configured password. Most sensors reject every other command until the
// password has been verified once per power cycle.
func (s *Sensor) VerifyPassword(ctx context.Context) error {
	return s.simple(ctx, "verify password", protocol.BuildVerifyPasswordCmd(s.config.Password))
}

// SetPassword changes the sensor password. On success the handle adopts
// the new password for subsequent VerifyPassword calls.
func (s *Sensor) SetPassword(ctx context.Context, password uint32) error {
	const op = "set password"
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, protocol.BuildSetPasswordCmd(password), s.config.ReadTimeout); err != nil {
		return err
	}
	s.config.Password = password
	s.logInfo("password changed")
	return nil
}

// SetAddress changes the sensor address. On success the handle stamps the
// new address on all subsequent packets.
func (s *Sensor) SetAddress(ctx context.Context, address uint32) error {
	const op = "set address"
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, protocol.BuildSetAddressCmd(address), s.config.ReadTimeout); err != nil {
		return err
	}
	s.config.Address = address
	s.logInfo("address changed", "address", fmt.Sprintf("0x%08X", address))
	return nil
}

// Handshake checks that the sensor is alive. The sensor answers the
// handshake command with its dedicated success byte.
func (s *Sensor) Handshake(ctx context.Context) error {
	const op = "handshake"
	defer s.lock(op)()
	status, _, err := s.transact(ctx, op, protocol.BuildHandshakeCmd(), s.config.ReadTimeout)
	if err != nil {
		return err
	}
	if status != protocol.StatusHandshakeOK && status != protocol.StatusSuccess {
		return &protocol.SensorError{Operation: op, Status: status}
	}
	return nil
}

// ReadParameters reads the sensor's system parameter block. The handle
// adopts the block's packet size for subsequent bulk transfers.
func (s *Sensor) ReadParameters(ctx context.Context) (*protocol.SystemParameters, error) {
	const op = "read parameters"
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, protocol.BuildReadParametersCmd(), s.config.ReadTimeout)
	if err != nil {
		return nil, err
	}
	if status != protocol.StatusSuccess {
		return nil, &protocol.SensorError{Operation: op, Status: status}
	}

	params, err := protocol.ParseSystemParameters(data)
	if err != nil {
		return nil, &ResponseError{Operation: op, Reason: err.Error()}
	}

	s.config.PacketSize = params.PacketSize.Bytes()
	s.logDebug("parameters read",
		"capacity", params.Capacity,
		"packet_size", params.PacketSize.Bytes(),
		"baudrate", params.Baudrate.BPS(),
	)
	return params, nil
}

// SetBaudrate changes the sensor's UART speed. The change takes effect on
// the sensor immediately; the caller must reopen the serial link at the
// new speed afterwards.
func (s *Sensor) SetBaudrate(ctx context.Context, baud protocol.Baudrate) error {
	const op = "set baudrate"
	if !baud.Valid() {
		return fmt.Errorf("%s: invalid baudrate code 0x%02X", op, byte(baud))
	}
	cmd, err := protocol.BuildSetParameterCmd(protocol.ParamBaudrate, byte(baud))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, cmd, s.config.ReadTimeout); err != nil {
		return err
	}
	s.logInfo("baudrate changed", "bps", baud.BPS())
	return nil
}

// SetSecurityLevel changes the sensor's matching strictness.
func (s *Sensor) SetSecurityLevel(ctx context.Context, level protocol.SecurityLevel) error {
	const op = "set security level"
	if !level.Valid() {
		return fmt.Errorf("%s: invalid security level 0x%02X", op, byte(level))
	}
	cmd, err := protocol.BuildSetParameterCmd(protocol.ParamSecurityLevel, byte(level))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.simple(ctx, op, cmd)
}

// SetPacketSize changes the sensor's bulk transfer packet size. On success
// the handle adopts the new chunk size for subsequent transfers.
func (s *Sensor) SetPacketSize(ctx context.Context, size protocol.PacketSize) error {
	const op = "set packet size"
	if !size.Valid() {
		return fmt.Errorf("%s: invalid packet size code 0x%02X", op, byte(size))
	}
	cmd, err := protocol.BuildSetParameterCmd(protocol.ParamPacketSize, byte(size))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, cmd, s.config.ReadTimeout); err != nil {
		return err
	}
	s.config.PacketSize = size.Bytes()
	s.logInfo("packet size changed", "bytes", size.Bytes())
	return nil
}

// CaptureImage scans a finger into the image buffer, driving the sensor
// backlight. It blocks up to the capture timeout waiting for a finger;
// StatusNoFinger means the window was empty when the sensor sampled it.
func (s *Sensor) CaptureImage(ctx context.Context) error {
	const op = "capture image"
	defer s.lock(op)()
	return s.statusOnly(ctx, op, protocol.BuildCaptureImageCmd(), s.config.CaptureTimeout)
}

// CaptureImageFree scans a finger without driving the backlight.
func (s *Sensor) CaptureImageFree(ctx context.Context) error {
	const op = "capture image free"
	defer s.lock(op)()
	return s.statusOnly(ctx, op, protocol.BuildCaptureImageFreeCmd(), s.config.CaptureTimeout)
}

// ConvertImage converts the image buffer into a character file in the
// given buffer.
func (s *Sensor) ConvertImage(ctx context.Context, buffer protocol.BufferID) error {
	const op = "convert image"
	cmd, err := protocol.BuildConvertImageCmd(buffer)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.simple(ctx, op, cmd)
}

// DownloadImage transfers the sensor's image buffer to the host as a raw
// 4-bit grayscale stream. See the fpimage package for decoding.
func (s *Sensor) DownloadImage(ctx context.Context) ([]byte, error) {
	const op = "download image"
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, protocol.BuildDownloadImageCmd(), s.config.ReadTimeout); err != nil {
		return nil, err
	}
	return s.receiveStream(ctx, op)
}

// UploadImage transfers a raw 4-bit grayscale stream from the host into
// the sensor's image buffer.
func (s *Sensor) UploadImage(ctx context.Context, data []byte) error {
	const op = "upload image"
	if len(data) != protocol.ImageStreamSize {
		return fmt.Errorf("%s: image stream must be exactly %d bytes, got %d", op, protocol.ImageStreamSize, len(data))
	}
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, protocol.BuildUploadImageCmd(), s.config.ReadTimeout); err != nil {
		return err
	}
	return s.sendStream(ctx, op, data)
}

// Match compares character buffers 1 and 2 and returns the matching
// score. A *protocol.SensorError with StatusNoMatch means the buffers
// hold different fingers.
func (s *Sensor) Match(ctx context.Context) (uint16, error) {
	const op = "match"
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, protocol.BuildMatchCmd(), s.config.ReadTimeout)
	if err != nil {
		return 0, err
	}
	if status != protocol.StatusSuccess {
		return 0, &protocol.SensorError{Operation: op, Status: status}
	}

	score, err := protocol.ParseMatchScore(data)
	if err != nil {
		return 0, &ResponseError{Operation: op, Reason: err.Error()}
	}
	return score, nil
}

// Search looks up the given character buffer in the library slots
// [start, start+count) and returns the matching slot and score. A
// *protocol.SensorError with StatusNotFound means no slot matched.
func (s *Sensor) Search(ctx context.Context, buffer protocol.BufferID, start, count byte) (*protocol.SearchResult, error) {
	cmd, err := protocol.BuildSearchCmd(buffer, start, count)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return s.search(ctx, "search", cmd)
}

// SearchFast is the accelerated variant of Search.
func (s *Sensor) SearchFast(ctx context.Context, buffer protocol.BufferID, start, count byte) (*protocol.SearchResult, error) {
	cmd, err := protocol.BuildSearchFastCmd(buffer, start, count)
	if err != nil {
		return nil, fmt.Errorf("fast search: %w", err)
	}
	return s.search(ctx, "fast search", cmd)
}

func (s *Sensor) search(ctx context.Context, op string, cmd protocol.Packet) (*protocol.SearchResult, error) {
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, cmd, s.config.ReadTimeout)
	if err != nil {
		return nil, err
	}
	if status != protocol.StatusSuccess {
		return nil, &protocol.SensorError{Operation: op, Status: status}
	}

	result, err := protocol.ParseSearchResult(data)
	if err != nil {
		return nil, &ResponseError{Operation: op, Reason: err.Error()}
	}
	return result, nil
}

// CreateTemplate merges both character buffers into a template model.
// The buffers must hold two captures of the same finger.
func (s *Sensor) CreateTemplate(ctx context.Context) error {
	return s.simple(ctx, "create template", protocol.BuildCreateTemplateCmd())
}

// StoreTemplate saves the template model at the given library slot.
func (s *Sensor) StoreTemplate(ctx context.Context, index byte) error {
	return s.simple(ctx, "store template", protocol.BuildStoreTemplateCmd(index))
}

// LoadTemplate loads a library slot into the given character buffer.
func (s *Sensor) LoadTemplate(ctx context.Context, buffer protocol.BufferID, index byte) error {
	const op = "load template"
	cmd, err := protocol.BuildLoadTemplateCmd(buffer, index)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.simple(ctx, op, cmd)
}

// DownloadTemplate transfers the given character buffer to the host.
func (s *Sensor) DownloadTemplate(ctx context.Context, buffer protocol.BufferID) ([]byte, error) {
	const op = "download template"
	cmd, err := protocol.BuildDownloadTemplateCmd(buffer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, cmd, s.config.ReadTimeout); err != nil {
		return nil, err
	}
	return s.receiveStream(ctx, op)
}

// UploadTemplate transfers character data from the host into the given
// character buffer.
func (s *Sensor) UploadTemplate(ctx context.Context, buffer protocol.BufferID, data []byte) error {
	const op = "upload template"
	cmd, err := protocol.BuildUploadTemplateCmd(buffer)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock(op)()
	if err := s.statusOnly(ctx, op, cmd, s.config.ReadTimeout); err != nil {
		return err
	}
	return s.sendStream(ctx, op, data)
}

// DeleteTemplate removes the template at the given library slot.
func (s *Sensor) DeleteTemplate(ctx context.Context, index byte) error {
	return s.simple(ctx, "delete template", protocol.BuildDeleteTemplateCmd(index))
}

// EmptyDatabase clears the whole template library.
func (s *Sensor) EmptyDatabase(ctx context.Context) error {
	return s.simple(ctx, "empty database", protocol.BuildEmptyDatabaseCmd())
}

// TemplateCount reports the number of templates stored in the library.
func (s *Sensor) TemplateCount(ctx context.Context) (uint16, error) {
	const op = "template count"
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, protocol.BuildTemplateCountCmd(), s.config.ReadTimeout)
	if err != nil {
		return 0, err
	}
	if status != protocol.StatusSuccess {
		return 0, &protocol.SensorError{Operation: op, Status: status}
	}

	count, err := protocol.ParseTemplateCount(data)
	if err != nil {
		return 0, &ResponseError{Operation: op, Reason: err.Error()}
	}
	return count, nil
}

// TemplateIndexTable reads one page of the slot occupancy bitmap and
// returns 256 booleans, one per slot of that page.
func (s *Sensor) TemplateIndexTable(ctx context.Context, page byte) ([]bool, error) {
	const op = "template index table"
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, protocol.BuildTemplateIndexTableCmd(page), s.config.ReadTimeout)
	if err != nil {
		return nil, err
	}
	if status != protocol.StatusSuccess {
		return nil, &protocol.SensorError{Operation: op, Status: status}
	}

	slots, err := protocol.ParseIndexTable(data)
	if err != nil {
		return nil, &ResponseError{Operation: op, Reason: err.Error()}
	}
	return slots, nil
}

// WriteNotepad writes one 32-byte page of the sensor's scratch flash.
func (s *Sensor) WriteNotepad(ctx context.Context, page byte, data []byte) error {
	const op = "write notepad"
	cmd, err := protocol.BuildWriteNotepadCmd(page, data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.simple(ctx, op, cmd)
}

// ReadNotepad reads one 32-byte page of the sensor's scratch flash.
func (s *Sensor) ReadNotepad(ctx context.Context, page byte) ([]byte, error) {
	const op = "read notepad"
	cmd, err := protocol.BuildReadNotepadCmd(page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, cmd, s.config.ReadTimeout)
	if err != nil {
		return nil, err
	}
	if status != protocol.StatusSuccess {
		return nil, &protocol.SensorError{Operation: op, Status: status}
	}

	pageData, err := protocol.ParseNotepadPage(data)
	if err != nil {
		return nil, &ResponseError{Operation: op, Reason: err.Error()}
	}
	return pageData, nil
}

// RandomNumber asks the sensor's hardware generator for a 4-byte value.
func (s *Sensor) RandomNumber(ctx context.Context) (uint32, error) {
	const op = "random number"
	defer s.lock(op)()

	status, data, err := s.transact(ctx, op, protocol.BuildRandomNumberCmd(), s.config.ReadTimeout)
	if err != nil {
		return 0, err
	}
	if status != protocol.StatusSuccess {
		return 0, &protocol.SensorError{Operation: op, Status: status}
	}

	value, err := protocol.ParseRandomNumber(data)
	if err != nil {
		return 0, &ResponseError{Operation: op, Reason: err.Error()}
	}
	return value, nil
}

// Backlight switches the sensor backlight on or off.
func (s *Sensor) Backlight(ctx context.Context, on bool) error {
	return s.simple(ctx, "backlight", protocol.BuildBacklightCmd(on))
}

// logDebug logs a debug message if a logger is configured.
func (s *Sensor) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Sensor) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Sensor) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
