// Package serialization saves and loads NDArray values in SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: header size (uint64 LE)]
//	  [header: JSON, tensor entries plus optional "__metadata__"]
//	  [tensor data: raw little-endian bytes, tensors in name order]
//
// All arrays in one file share an element type. Supported element types are
// the fixed-size integers and float32/float64 (including named types with
// those underlying types).
//
// Example usage:
//
//	err := serialization.SaveFile("model.safetensors", map[string]*tensor.NDArray[float64]{
//	    "weights": w,
//	    "bias":    b,
//	}, map[string]string{"model": "linreg"})
//
//	arrays, metadata, err := serialization.LoadFile[float64]("model.safetensors")
package serialization
