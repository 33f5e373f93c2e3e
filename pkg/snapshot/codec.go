package snapshot

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

// initCodec creates the shared zstd encoder and decoder. Both are safe for
// concurrent EncodeAll / DecodeAll calls.
func initCodec() error {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil)
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return codecErr
}

// Encode marshals v as JSON and compresses it.
func Encode[S any](v S) ([]byte, error) {
	if err := initCodec(); err != nil {
		return nil, fmt.Errorf("snapshot: init codec: %w", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw))), nil
}

// Decode reverses Encode.
func Decode[S any](data []byte) (S, error) {
	var v S
	if err := initCodec(); err != nil {
		return v, fmt.Errorf("snapshot: init codec: %w", err)
	}
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return v, fmt.Errorf("snapshot: decompress: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("snapshot: decode: %w", err)
	}
	return v, nil
}
