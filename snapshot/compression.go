package snapshot

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is the algorithm applied to a snapshot payload.
type Compression uint8

const (
	None Compression = iota
	Gzip
	Zstd
	Brotli
	LZ4
	Snappy
)

var compressionNames = map[Compression]string{ //nolint:gochecknoglobals
	None:   "none",
	Gzip:   "gzip",
	Zstd:   "zstd",
	Brotli: "brotli",
	LZ4:    "lz4",
	Snappy: "snappy",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}

	return fmt.Sprintf("compression(%d)", uint8(c))
}

// ParseCompression maps a name such as "zstd" (any case) to a Compression.
// The empty string means None.
func ParseCompression(s string) (Compression, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return None, nil
	}

	for c, name := range compressionNames {
		if name == s {
			return c, nil
		}
	}

	return None, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// compress returns data compressed with c.
func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Snappy:
		return snappy.Encode(nil, data), nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer enc.Close()

		return enc.EncodeAll(data, nil), nil
	case Gzip, Brotli, LZ4:
		var buf bytes.Buffer

		w := newStreamWriter(c, &buf)

		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("compressing with %s: %w", c, err)
		}

		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compressing with %s: %w", c, err)
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}

func newStreamWriter(c Compression, w io.Writer) io.WriteCloser {
	switch c {
	case Gzip:
		return gzip.NewWriter(w)
	case Brotli:
		return brotli.NewWriter(w)
	default:
		return lz4.NewWriter(w)
	}
}

// decompress reverses compress.
func decompress(c Compression, data []byte) ([]byte, error) {
	var (
		out []byte
		err error
	)

	switch c {
	case None:
		return data, nil
	case Snappy:
		out, err = snappy.Decode(nil, data)
	case Zstd:
		var dec *zstd.Decoder

		dec, err = zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		out, err = dec.DecodeAll(data, nil)
	case Gzip:
		var r *gzip.Reader

		r, err = gzip.NewReader(bytes.NewReader(data))
		if err == nil {
			out, err = io.ReadAll(r)
		}
	case Brotli:
		out, err = io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	case LZ4:
		out, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", c, err)
	}

	return out, nil
}
