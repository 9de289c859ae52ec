package serialization

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bwmllib/bwml/internal/tensor"
)

const metadataKey = "__metadata__"

// tensorInfo is the header entry for one tensor.
type tensorInfo struct {
	DType       DType    `json:"dtype"`
	Shape       []int    `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes arrays and optional metadata in SafeTensors format.
//
// Tensors are laid out in the data section sorted by name. The header is
// padded with spaces to an 8-byte boundary.
func WriteSafeTensors[T tensor.Numeric](w io.Writer, arrays map[string]*tensor.NDArray[T], metadata map[string]string) error {
	dtype, err := dtypeOf[T]()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(arrays))
	for name, arr := range arrays {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if arr == nil {
			return fmt.Errorf("tensor %q is nil", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(arrays)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	size := int64(elemSize[T]())
	var offset int64
	for _, name := range names {
		arr := arrays[name]
		n := int64(arr.NumElements()) * size
		header[name] = tensorInfo{
			DType:       dtype,
			Shape:       append(make([]int, 0, arr.Rank()), arr.Shape()...),
			DataOffsets: [2]int64{offset, offset + n},
		}
		offset += n
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if rem := len(headerJSON) % 8; rem != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte(" "), 8-rem)...)
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, name := range names {
		if err := binary.Write(bw, binary.LittleEndian, arrays[name].Data()); err != nil {
			return fmt.Errorf("failed to write tensor %q: %w", name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

// SaveFile writes arrays to path in SafeTensors format.
func SaveFile[T tensor.Numeric](path string, arrays map[string]*tensor.NDArray[T], metadata map[string]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return WriteSafeTensors(f, arrays, metadata)
}
