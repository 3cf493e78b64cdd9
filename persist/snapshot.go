package persist

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/oldnick85/func-wander/codec"
)

var (
	snapshotMagic   = [4]byte{'F', 'W', 'S', '1'}
	snapshotVersion = uint16(1)

	// Fixed header: magic, version, flags, codec name length. The codec name
	// follows, then the payload.
	snapshotHeaderFixedLen = 9
)

const flagZstd uint16 = 1

var (
	// ErrInvalidMagic is returned when the data is not a snapshot container.
	ErrInvalidMagic = errors.New("persist: invalid snapshot magic")
	// ErrUnsupportedVersion is returned for container versions this build
	// cannot read.
	ErrUnsupportedVersion = errors.New("persist: unsupported snapshot version")
	// ErrUnknownCodec is returned when the header names a codec this build
	// does not include.
	ErrUnknownCodec = errors.New("persist: unknown snapshot codec")
	// ErrTruncated is returned when the data ends inside the header.
	ErrTruncated = errors.New("persist: truncated snapshot")
)

// Options configures snapshot encoding.
type Options struct {
	// Codec encodes the state document. The codec name is recorded in the
	// header, so any built-in codec can decode the file later.
	Codec codec.Codec
	// Compress enables zstd compression of the payload.
	Compress bool
}

// WithCodec selects the payload codec.
func WithCodec(c codec.Codec) func(*Options) {
	return func(o *Options) { o.Codec = c }
}

// WithCompression enables zstd payload compression.
func WithCompression() func(*Options) {
	return func(o *Options) { o.Compress = true }
}

// Marshal encodes v into a self-describing snapshot container.
func Marshal(v any, optFns ...func(*Options)) ([]byte, error) {
	opts := Options{Codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := opts.Codec.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	var flags uint16
	if opts.Compress {
		flags |= flagZstd
		payload = compressPayload(payload)
	}

	name := opts.Codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("persist: codec name too long: %q", name)
	}

	buf := make([]byte, 0, snapshotHeaderFixedLen+len(name)+len(payload))
	buf = append(buf, snapshotMagic[:]...)
	var fixed [5]byte
	binary.LittleEndian.PutUint16(fixed[0:2], snapshotVersion)
	binary.LittleEndian.PutUint16(fixed[2:4], flags)
	fixed[4] = uint8(len(name))
	buf = append(buf, fixed[:]...)
	buf = append(buf, name...)
	buf = append(buf, payload...)
	return buf, nil
}

// Unmarshal decodes a snapshot container into v, selecting the codec recorded
// in the header.
func Unmarshal(data []byte, v any) error {
	if len(data) < snapshotHeaderFixedLen {
		return ErrTruncated
	}
	if [4]byte(data[0:4]) != snapshotMagic {
		return ErrInvalidMagic
	}
	version := binary.LittleEndian.Uint16(data[4:6])
	if version != snapshotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	flags := binary.LittleEndian.Uint16(data[6:8])
	nameLen := int(data[8])
	if len(data) < snapshotHeaderFixedLen+nameLen {
		return ErrTruncated
	}
	name := string(data[snapshotHeaderFixedLen : snapshotHeaderFixedLen+nameLen])

	c, ok := codec.ByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	payload := data[snapshotHeaderFixedLen+nameLen:]
	if flags&flagZstd != 0 {
		decompressed, err := decompressPayload(payload)
		if err != nil {
			return fmt.Errorf("failed to decompress snapshot payload: %w", err)
		}
		payload = decompressed
	}

	if err := c.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return nil
}

// Save encodes v and writes it to the store under name.
func Save(ctx context.Context, store Store, name string, v any, optFns ...func(*Options)) error {
	data, err := Marshal(v, optFns...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads the snapshot named name from the store and decodes it into v.
func Load(ctx context.Context, store Store, name string, v any) error {
	data, err := store.Get(ctx, name)
	if err != nil {
		return err
	}
	return Unmarshal(data, v)
}

// zstd encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func compressPayload(data []byte) []byte {
	var enc *zstd.Encoder
	if v := zstdEncoderPool.Get(); v != nil {
		enc = v.(*zstd.Encoder)
	} else {
		enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	}
	out := enc.EncodeAll(data, nil)
	zstdEncoderPool.Put(enc)
	return out
}

func decompressPayload(data []byte) ([]byte, error) {
	var dec *zstd.Decoder
	if v := zstdDecoderPool.Get(); v != nil {
		dec = v.(*zstd.Decoder)
	} else {
		dec, _ = zstd.NewReader(nil)
	}
	out, err := dec.DecodeAll(data, nil)
	zstdDecoderPool.Put(dec)
	return out, err
}
