package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"helmwatch/internal/modules/telemetry/domain"
	telemetryout "helmwatch/internal/modules/telemetry/port/out"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode

	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

// zstdMagic opens every zstd frame. Files without it are plain CBOR.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

func init() {
	var err error
	encOptions := cbor.CoreDetEncOptions()
	encOptions.Time = cbor.TimeRFC3339Nano
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("telemetry: cbor encoder initialization failed: " + err.Error())
	}
	// Entry.Data is map[string]any; nested maps must decode the same way.
	decMode, err = cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any(nil))}.DecMode()
	if err != nil {
		panic("telemetry: cbor decoder initialization failed: " + err.Error())
	}
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("telemetry: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("telemetry: zstd decoder initialization failed: " + err.Error())
	}
}

type persistedLog struct {
	Version int            `cbor:"version"`
	Entries []domain.Entry `cbor:"entries"`
}

const logFileVersion = 1

// CBORLogStore keeps the diagnostic buffer in a single zstd-compressed
// CBOR file.
type CBORLogStore struct {
	path string
}

func NewCBORLogStore(path string) telemetryout.LogPersistence {
	return &CBORLogStore{path: path}
}

func (s *CBORLogStore) Save(_ context.Context, newestFirst []domain.Entry) error {
	payload, err := encMode.Marshal(persistedLog{Version: logFileVersion, Entries: newestFirst})
	if err != nil {
		return fmt.Errorf("encode diagnostic log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create diagnostic log dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, zstdEncoder.EncodeAll(payload, nil), 0o600); err != nil {
		return fmt.Errorf("write diagnostic log: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace diagnostic log: %w", err)
	}
	return nil
}

func (s *CBORLogStore) Load(_ context.Context) ([]domain.Entry, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("read diagnostic log: %w", err)
	}
	if bytes.HasPrefix(payload, zstdMagic) {
		payload, err = zstdDecoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress diagnostic log: %w", err)
		}
	}
	decoded := persistedLog{}
	if err := decMode.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("decode diagnostic log: %w", err)
	}
	if decoded.Version != logFileVersion {
		return nil, fmt.Errorf("unsupported diagnostic log version %d", decoded.Version)
	}
	return decoded.Entries, nil
}

func (s *CBORLogStore) Purge(_ context.Context) error {
	for _, path := range []string{s.path, s.path + ".tmp"} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("purge diagnostic log: %w", err)
		}
	}
	return nil
}
