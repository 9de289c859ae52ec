package serialization

import (
	"fmt"
	"sort"
	"strings"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// entry is one tensor's location in the data section.
type entry struct {
	Name  string
	Begin int64
	End   int64
}

// validateOffsets checks for inverted, overlapping or out-of-bounds
// tensor regions.
func validateOffsets(entries []entry, dataSize int64) error {
	if len(entries) > MaxTensorCount {
		return &ValidationError{
			Err:     ErrTooManyTensors,
			Details: fmt.Sprintf("got %d, max %d", len(entries), MaxTensorCount),
		}
	}

	regions := make([]entry, 0, len(entries))
	for _, e := range entries {
		if e.Begin < 0 || e.End < e.Begin {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  e.Name,
				Details: fmt.Sprintf("invalid offsets [%d, %d)", e.Begin, e.End),
			}
		}
		if e.End > dataSize {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Tensor:  e.Name,
				Details: fmt.Sprintf("end %d > data size %d", e.End, dataSize),
			}
		}
		// Empty tensors occupy no bytes and cannot overlap.
		if e.End > e.Begin {
			regions = append(regions, e)
		}
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Begin < regions[j].Begin
	})
	for i := 1; i < len(regions); i++ {
		prev, cur := regions[i-1], regions[i]
		if prev.End > cur.Begin {
			return &ValidationError{
				Err:     ErrOffsetOverlap,
				Tensor:  prev.Name,
				Tensor2: cur.Name,
				Details: fmt.Sprintf("regions [%d, %d) and [%d, %d) overlap",
					prev.Begin, prev.End, cur.Begin, cur.End),
			}
		}
	}
	return nil
}

// ValidateTensorName rejects names that are empty, too long, reserved, or
// contain path separators, ".." or null bytes.
func ValidateTensorName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Err: ErrInvalidTensorName, Details: "empty name"}
	case name == metadataKey:
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "reserved name"}
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Err:     ErrInvalidTensorName,
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	case strings.Contains(name, ".."):
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains '..'"}
	case strings.ContainsAny(name, "/\\"):
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains path separator"}
	case strings.Contains(name, "\x00"):
		return &ValidationError{Err: ErrInvalidTensorName, Tensor: name, Details: "contains null byte"}
	}
	return nil
}
