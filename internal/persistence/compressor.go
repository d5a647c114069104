package persistence

import (
	"fmt"
	"sidebard/internal/persistence/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxSnapshotSize bounds what a decoded snapshot may grow to.
const maxSnapshotSize = 64 << 20

// ZstdCompression packs chat snapshots. Snapshots are small and written
// rarely, so the encoder favors ratio over speed.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(snapshot []byte) ([]byte, error) {
	return z.encoder.EncodeAll(snapshot, nil), nil
}

func (z *ZstdCompression) Decompress(packed []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot is not zstd: %w", err)
	}
	return out, nil
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
