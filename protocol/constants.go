package protocol

// Frame structure constants.
const (
	// MarkerHigh is the first byte of the frame start marker (0xEF)
	MarkerHigh = 0xEF

	// MarkerLow is the second byte of the frame start marker (0x01)
	MarkerLow = 0x01

	// HeaderSize is the size of the frame header in bytes:
	// MARKER(2) + ADDRESS(4) + KIND(1) + LEN(2)
	HeaderSize = 9

	// ChecksumSize is the size of the trailing checksum field (2 bytes)
	ChecksumSize = 2

	// MinFrameSize is the minimum frame size in bytes (empty payload)
	MinFrameSize = HeaderSize + ChecksumSize

	// MaxPayloadSize is the maximum payload size per frame.
	// The sensor's largest negotiable packet size is 256 bytes.
	MaxPayloadSize = 256

	// MaxFrameSize is the largest frame the sensor can legally emit.
	// Any length field implying a larger frame is corruption.
	MaxFrameSize = MinFrameSize + MaxPayloadSize
)

// Default link credentials. Factory-fresh sensors answer on the broadcast
// address with an all-zero password.
const (
	// DefaultAddress is the factory default sensor address
	DefaultAddress = 0xFFFFFFFF

	// DefaultPassword is the factory default sensor password
	DefaultPassword = 0x00000000
)

// Command codes understood by the sensor.
const (
	// System commands

	// CmdSetAddress changes the sensor address (4-byte value)
	CmdSetAddress = 0x15

	// CmdSetPassword changes the sensor password (4-byte value)
	CmdSetPassword = 0x12

	// CmdVerifyPassword authenticates the host against the sensor
	CmdVerifyPassword = 0x13

	// CmdSetParameter writes a system parameter register
	CmdSetParameter = 0x0E

	// CmdReadParameters reads the 16-byte system parameter block
	CmdReadParameters = 0x0F

	// CmdHandshake checks that the sensor is alive and responsive
	CmdHandshake = 0x53

	// Image commands

	// CmdCaptureImage scans a finger into the image buffer (backlight on)
	CmdCaptureImage = 0x01

	// CmdCaptureImageFree scans a finger without driving the backlight
	CmdCaptureImageFree = 0x52

	// CmdConvertImage converts the image buffer into a character buffer
	CmdConvertImage = 0x02

	// CmdDownloadImage streams the image buffer to the host
	CmdDownloadImage = 0x0A

	// CmdUploadImage streams an image from the host into the image buffer
	CmdUploadImage = 0x0B

	// Template commands

	// CmdMatch compares character buffers 1 and 2 against each other
	CmdMatch = 0x03

	// CmdSearch searches the template library for a character buffer
	CmdSearch = 0x04

	// CmdSearchFast is the accelerated variant of CmdSearch
	CmdSearchFast = 0x1B

	// CmdCreateTemplate merges both character buffers into a template
	CmdCreateTemplate = 0x05

	// CmdStoreTemplate saves the template at a library slot
	CmdStoreTemplate = 0x06

	// CmdLoadTemplate loads a library slot into a character buffer
	CmdLoadTemplate = 0x07

	// CmdDownloadTemplate streams a character buffer to the host
	CmdDownloadTemplate = 0x08

	// CmdUploadTemplate streams a character buffer from the host
	CmdUploadTemplate = 0x09

	// CmdDeleteTemplate removes one template slot
	CmdDeleteTemplate = 0x0C

	// CmdEmptyDatabase clears the whole template library
	CmdEmptyDatabase = 0x0D

	// CmdTemplateCount reports the number of stored templates
	CmdTemplateCount = 0x1D

	// CmdTemplateIndexTable reads a page of the slot occupancy bitmap
	CmdTemplateIndexTable = 0x1F

	// Extras

	// CmdWriteNotepad writes one 32-byte notepad page
	CmdWriteNotepad = 0x18

	// CmdReadNotepad reads one 32-byte notepad page
	CmdReadNotepad = 0x19

	// CmdRandomNumber asks the sensor for a 4-byte random value
	CmdRandomNumber = 0x14

	// CmdBacklightOn switches the sensor backlight on
	CmdBacklightOn = 0x50

	// CmdBacklightOff switches the sensor backlight off
	CmdBacklightOff = 0x51
)

// Notepad geometry: 16 pages of 32 bytes of host-usable scratch flash.
const (
	// NotepadPageSize is the size of one notepad page in bytes
	NotepadPageSize = 32

	// NotepadPageCount is the number of notepad pages
	NotepadPageCount = 16
)

// IndexTablePageSize is the size of one slot occupancy bitmap page in bytes.
// Each page covers 256 slots, one bit per slot.
const IndexTablePageSize = 32

// Sensor image geometry. The raw image stream packs two 4-bit pixels
// per byte, row major.
const (
	// ImageWidth is the sensor image width in pixels
	ImageWidth = 256

	// ImageHeight is the sensor image height in pixels
	ImageHeight = 288

	// ImageStreamSize is the size of a complete raw image stream in bytes
	ImageStreamSize = ImageWidth * ImageHeight / 2
)

// Response data sizes.
const (
	// SystemParametersSize is the size of the system parameter block (16 bytes)
	SystemParametersSize = 16

	// SearchResultSize is the data size of a search acknowledgement:
	// INDEX(1) + SCORE(2)
	SearchResultSize = 3

	// MatchResultSize is the data size of a match acknowledgement: SCORE(2)
	MatchResultSize = 2

	// TemplateCountSize is the data size of a template count acknowledgement
	TemplateCountSize = 2

	// RandomNumberSize is the data size of a random number acknowledgement
	RandomNumberSize = 4
)
