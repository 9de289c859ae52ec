package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/bwmllib/bwml/internal/tensor"
)

// header is a parsed SafeTensors JSON header.
type header struct {
	Metadata map[string]string
	Tensors  map[string]tensorInfo
}

// UnmarshalJSON splits "__metadata__" from the tensor entries.
func (h *header) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	h.Tensors = make(map[string]tensorInfo, len(raw))
	for key, value := range raw {
		if key == metadataKey {
			if err := json.Unmarshal(value, &h.Metadata); err != nil {
				return fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}
		var info tensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to parse tensor %q: %w", key, err)
		}
		h.Tensors[key] = info
	}
	return nil
}

// ReadSafeTensors reads a SafeTensors stream whose tensors all have element
// type T. It returns the arrays by name and the header metadata (nil when the
// file has none).
func ReadSafeTensors[T tensor.Numeric](r io.Reader) (map[string]*tensor.NDArray[T], map[string]string, error) {
	dtype, err := dtypeOf[T]()
	if err != nil {
		return nil, nil, err
	}

	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes (max %d)", ErrHeaderTooLarge, headerSize, MaxHeaderSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	var h header
	if err := json.Unmarshal(headerBytes, &h); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	entries := make([]entry, 0, len(h.Tensors))
	for name, info := range h.Tensors {
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		if info.DType != dtype {
			return nil, nil, &ValidationError{
				Err:     ErrDTypeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("file has %s, requested %s", info.DType, dtype),
			}
		}
		entries = append(entries, entry{Name: name, Begin: info.DataOffsets[0], End: info.DataOffsets[1]})
	}
	if err := validateOffsets(entries, int64(len(data))); err != nil {
		return nil, nil, err
	}

	size := int64(elemSize[T]())
	arrays := make(map[string]*tensor.NDArray[T], len(h.Tensors))
	for name, info := range h.Tensors {
		shape := tensor.Shape(info.Shape)
		if err := shape.Validate(); err != nil {
			return nil, nil, fmt.Errorf("tensor %q: %w", name, err)
		}

		begin, end := info.DataOffsets[0], info.DataOffsets[1]
		n, ok := elementCount(shape)
		if !ok || n*size != end-begin {
			return nil, nil, &ValidationError{
				Err:     ErrSizeMismatch,
				Tensor:  name,
				Details: fmt.Sprintf("shape %v with %d-byte elements needs %d bytes, region has %d", shape, size, n*size, end-begin),
			}
		}

		values := make([]T, n)
		if err := binary.Read(bytes.NewReader(data[begin:end]), binary.LittleEndian, values); err != nil {
			return nil, nil, fmt.Errorf("failed to decode tensor %q: %w", name, err)
		}
		arr, err := tensor.FromSlice(shape, values)
		if err != nil {
			return nil, nil, fmt.Errorf("tensor %q: %w", name, err)
		}
		arrays[name] = arr
	}

	return arrays, h.Metadata, nil
}

// LoadFile reads a SafeTensors file from path.
func LoadFile[T tensor.Numeric](path string) (map[string]*tensor.NDArray[T], map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadSafeTensors[T](f)
}

// elementCount multiplies the dims, reporting false on overflow.
func elementCount(shape tensor.Shape) (int64, bool) {
	const maxElements = math.MaxInt64 / 8
	n := int64(1)
	for _, d := range shape {
		if d != 0 && n > maxElements/int64(d) {
			return 0, false
		}
		n *= int64(d)
	}
	return n, true
}
