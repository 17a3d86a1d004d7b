package persistence

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/johari/internal/compress"
)

const (
	// Version is the current envelope version.
	Version = 1

	// HeaderSize is the encoded size of Header.
	HeaderSize = 24

	// MaxStoreSize bounds the encoded document size of a store.
	MaxStoreSize = compress.MaxDecodedSize
)

// Magic identifies persisted subject stores (ASCII: "JHW1").
var Magic = [4]byte{'J', 'H', 'W', '1'}

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrTruncated      = errors.New("truncated store")
	ErrUnknownCodec   = errors.New("unknown codec")
	ErrTooLarge       = compress.ErrTooLarge
)

// Header is the fixed-size prefix of every persisted store.
type Header struct {
	Magic       [4]byte
	Version     uint16
	Compression uint8
	CodecLen    uint8
	Fingerprint uint32
	RawLen      uint32
	PayloadLen  uint32
	Checksum    uint32
}

func (h *Header) marshal() []byte {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	// Writes into a bytes.Buffer cannot fail.
	_ = binary.Write(&buf, binary.LittleEndian, h)
	return buf.Bytes()
}

func parseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, fmt.Errorf("%w: %d header bytes", ErrTruncated, len(data))
	}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return h, err
	}
	if h.Magic != Magic {
		return h, ErrInvalidMagic
	}
	if h.Version != Version {
		return h, fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	return h, nil
}

// document is the codec-level representation of a store.
type document struct {
	Kind           string       `json:"kind"`
	VocabularySize int          `json:"vocabulary_size"`
	Subjects       []subjectDoc `json:"subjects"`
}

type subjectDoc struct {
	ID    string    `json:"id"`
	Own   *uint64   `json:"own,omitempty"`
	Peers []peerDoc `json:"peers,omitempty"`
}

type peerDoc struct {
	Assessor string `json:"assessor"`
	Traits   uint64 `json:"traits"`
}
