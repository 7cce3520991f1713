// Package snapshot persists flatset.FlatSet values.
//
// A snapshot is a fixed header followed by a payload:
//
//	offset size field
//	0      4    magic "FSET"
//	4      1    version (1)
//	5      1    payload format (Format)
//	6      1    payload compression (Compression)
//	7      1    reserved, zero
//	8      8    element count, big endian
//	16     8    payload length in bytes, big endian
//	24     8    xxh3 of the payload as stored, big endian
//	32     ...  payload
//
// The payload is the element list in ascending order, encoded with the
// header's format and then compressed. Decoding is self-describing: the
// Codec's own Format and Compression only matter when encoding. Elements are
// re-inserted through the decoding Codec's comparator, so a snapshot taken
// under one ordering loads correctly under another.
package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/amp-labs/flatset/alloc"
	"github.com/amp-labs/flatset/compare"
	"github.com/amp-labs/flatset/flatset"
	"github.com/amp-labs/flatset/logger"
	"github.com/zeebo/xxh3"
)

const (
	magic      = "FSET"
	version    = 1
	headerSize = 32
)

var (
	// ErrBadMagic means the input is not a snapshot.
	ErrBadMagic = errors.New("not a flatset snapshot")
	// ErrUnsupportedVersion means the snapshot was written by a newer version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrChecksumMismatch means the payload is corrupt.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
	// ErrTruncated means the input ended before the payload did.
	ErrTruncated = errors.New("snapshot truncated")
	// ErrUnknownFormat is returned for a payload format this package does not know.
	ErrUnknownFormat = errors.New("unknown snapshot format")
	// ErrUnknownCompression is returned for a compression this package does not know.
	ErrUnknownCompression = errors.New("unknown snapshot compression")
	// ErrNoComparator is returned when decoding with a Codec that has no comparator.
	ErrNoComparator = errors.New("snapshot codec has no comparator")
)

// Codec encodes and decodes snapshots of FlatSet[T].
//
// Example:
//
//	codec := snapshot.Codec[string]{
//	    Format:      snapshot.FormatJSON,
//	    Compression: snapshot.Zstd,
//	    Comparator:  compare.Natural{},
//	}
//
//	if err := codec.SaveFile(ctx, "words.fset", set); err != nil {
//	    return err
//	}
//
//	loaded, err := codec.LoadFile(ctx, "words.fset")
type Codec[T any] struct {
	// Format of the payload when encoding. Zero means FormatJSON.
	Format Format
	// Compression of the payload when encoding. Zero means None.
	Compression Compression
	// Comparator orders decoded sets. Required for decoding.
	Comparator compare.Comparator[T]
	// Allocator backs decoded sets. Nil means the default heap allocator.
	Allocator alloc.Allocator[T]
}

type header struct {
	format      Format
	compression Compression
	count       uint64
	length      uint64
	checksum    uint64
}

func (h header) marshal() []byte {
	buf := make([]byte, headerSize)

	copy(buf, magic)
	buf[4] = version
	buf[5] = byte(h.format)
	buf[6] = byte(h.compression)
	binary.BigEndian.PutUint64(buf[8:], h.count)
	binary.BigEndian.PutUint64(buf[16:], h.length)
	binary.BigEndian.PutUint64(buf[24:], h.checksum)

	return buf
}

func parseHeader(buf []byte) (header, error) {
	if string(buf[:4]) != magic {
		return header{}, ErrBadMagic
	}

	if buf[4] != version {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, buf[4])
	}

	return header{
		format:      Format(buf[5]),
		compression: Compression(buf[6]),
		count:       binary.BigEndian.Uint64(buf[8:]),
		length:      binary.BigEndian.Uint64(buf[16:]),
		checksum:    binary.BigEndian.Uint64(buf[24:]),
	}, nil
}

func (c Codec[T]) format() Format {
	if c.Format == 0 {
		return FormatJSON
	}

	return c.Format
}

// Encode writes a snapshot of s to w.
func (c Codec[T]) Encode(ctx context.Context, w io.Writer, s *flatset.FlatSet[T]) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encodeValues(c.format(), s.Entries())
	if err != nil {
		return err
	}

	payload, err := compress(c.Compression, raw)
	if err != nil {
		return err
	}

	h := header{
		format:      c.format(),
		compression: c.Compression,
		count:       uint64(s.Size()),
		length:      uint64(len(payload)),
		checksum:    xxh3.Hash(payload),
	}

	if _, err := w.Write(h.marshal()); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}

	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing snapshot payload: %w", err)
	}

	logger.Get(ctx).Debug("encoded snapshot",
		"elements", h.count,
		"format", h.format.String(),
		"compression", h.compression.String(),
		"raw_bytes", len(raw),
		"stored_bytes", len(payload))

	return nil
}

// Decode reads one snapshot from r and builds a set from it using the
// Codec's comparator and allocator.
func (c Codec[T]) Decode(ctx context.Context, r io.Reader) (*flatset.FlatSet[T], error) {
	if c.Comparator == nil {
		return nil, ErrNoComparator
	}

	head := make([]byte, headerSize)
	if _, err := io.ReadFull(r, head); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: header", ErrTruncated)
		}

		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}

	h, err := parseHeader(head)
	if err != nil {
		return nil, err
	}

	var payload bytes.Buffer

	n, err := io.Copy(&payload, io.LimitReader(r, int64(h.length))) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("reading snapshot payload: %w", err)
	}

	if uint64(n) != h.length { //nolint:gosec
		return nil, fmt.Errorf("%w: payload has %d of %d bytes", ErrTruncated, n, h.length)
	}

	if sum := xxh3.Hash(payload.Bytes()); sum != h.checksum {
		return nil, fmt.Errorf("%w: stored %016x, computed %016x", ErrChecksumMismatch, h.checksum, sum)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := decompress(h.compression, payload.Bytes())
	if err != nil {
		return nil, err
	}

	values, err := decodeValues[T](h.format, raw)
	if err != nil {
		return nil, err
	}

	return c.build(ctx, h, values)
}

// build inserts the decoded values and reports anything the comparator had
// to repair.
func (c Codec[T]) build(ctx context.Context, h header, values []T) (*flatset.FlatSet[T], error) {
	set, err := flatset.FromSlice(c.Comparator, values, flatset.WithAllocator(c.Allocator))
	if err != nil {
		return nil, err
	}

	log := logger.Get(ctx)

	if uint64(len(values)) != h.count { //nolint:gosec
		log.Warn("snapshot element count disagrees with header",
			"header_count", h.count, "payload_count", len(values))
	}

	if set.Size() != len(values) {
		log.Warn("snapshot held elements equivalent under this ordering; duplicates dropped",
			"payload_count", len(values), "kept", set.Size())
	} else if !sortedUnder(c.Comparator, values) {
		log.Warn("snapshot was written under a different ordering; elements re-sorted",
			"elements", set.Size())
	}

	log.Debug("decoded snapshot",
		"elements", set.Size(),
		"format", h.format.String(),
		"compression", h.compression.String(),
		"stored_bytes", h.length)

	return set, nil
}

func sortedUnder[T any](less compare.Comparator[T], values []T) bool {
	for i := 1; i < len(values); i++ {
		if !less.Less(values[i-1], values[i]) {
			return false
		}
	}

	return true
}

// Marshal returns a snapshot of s.
func (c Codec[T]) Marshal(ctx context.Context, s *flatset.FlatSet[T]) ([]byte, error) {
	var buf bytes.Buffer

	if err := c.Encode(ctx, &buf, s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal builds a set from a snapshot held in memory.
func (c Codec[T]) Unmarshal(ctx context.Context, data []byte) (*flatset.FlatSet[T], error) {
	return c.Decode(ctx, bytes.NewReader(data))
}
