package serialization

import (
	"fmt"
	"reflect"

	"github.com/bwmllib/bwml/internal/tensor"
)

// DType is a SafeTensors dtype string.
type DType string

// Supported SafeTensors dtypes.
const (
	F32 DType = "F32"
	F64 DType = "F64"
	I8  DType = "I8"
	I16 DType = "I16"
	I32 DType = "I32"
	I64 DType = "I64"
	U8  DType = "U8"
	U16 DType = "U16"
	U32 DType = "U32"
	U64 DType = "U64"
)

// dtypeOf maps an element type to its SafeTensors dtype.
// Platform-sized ints and complex numbers have no SafeTensors equivalent.
func dtypeOf[T tensor.Numeric]() (DType, error) {
	typ := reflect.TypeFor[T]()
	switch typ.Kind() {
	case reflect.Float32:
		return F32, nil
	case reflect.Float64:
		return F64, nil
	case reflect.Int8:
		return I8, nil
	case reflect.Int16:
		return I16, nil
	case reflect.Int32:
		return I32, nil
	case reflect.Int64:
		return I64, nil
	case reflect.Uint8:
		return U8, nil
	case reflect.Uint16:
		return U16, nil
	case reflect.Uint32:
		return U32, nil
	case reflect.Uint64:
		return U64, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDType, typ)
	}
}

// elemSize returns the encoded size in bytes of one element of T.
func elemSize[T tensor.Numeric]() int {
	return int(reflect.TypeFor[T]().Size())
}
