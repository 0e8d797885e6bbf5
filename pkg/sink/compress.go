// Copyright (c) 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package sink

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const (
	CompressionNone = "none"
	CompressionZstd = "zstd"

	// ZstdSuffix is appended to the name of every blob written through a ZstdSink
	ZstdSuffix = ".zst"
)

// ValidCompressions are the accepted values for the compression setting
var ValidCompressions = []string{CompressionNone, CompressionZstd}

// ZstdSink compresses blobs before handing them to another sink
type ZstdSink struct {
	next    Sink
	encoder *zstd.Encoder
}

// NewZstdSink wraps next so that every blob is zstd compressed and
// stored under its name with the ".zst" suffix.
func NewZstdSink(next Sink) (*ZstdSink, error) {
	// EncodeAll is safe for concurrent use, so one encoder serves all writers
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("Error creating zstd encoder: %w", err)
	}
	return &ZstdSink{next: next, encoder: enc}, nil
}

func (z *ZstdSink) Put(ctx context.Context, name string, data []byte) (string, error) {
	compressed := z.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
	return z.next.Put(ctx, name+ZstdSuffix, compressed)
}

// Decompress reverses the encoding done by a ZstdSink
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// Wrap applies the named compression to a sink
func Wrap(s Sink, compression string) (Sink, error) {
	switch compression {
	case "", CompressionNone:
		return s, nil
	case CompressionZstd:
		return NewZstdSink(s)
	default:
		return nil, fmt.Errorf("Unknown compression %q, must be one of %v", compression, ValidCompressions)
	}
}
