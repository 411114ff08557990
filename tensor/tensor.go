// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes the shape and data type descriptors carried by
// execution-graph vertices and by the vector field.
//
// Example:
//
//	out, broadcast, err := tensor.BroadcastShapes(tensor.Shape{3}, tensor.Scalar)
//	// out = [3], broadcast = true
package tensor

import (
	"github.com/born-ml/symdiff/internal/tensor"
)

// Shape represents the dimensions of a value.
// The empty shape is a scalar; Shape{3} is a vector of three elements.
type Shape = tensor.Shape

// Scalar is the shape of a single element.
var Scalar = tensor.Scalar

// DataType represents the element type of a value.
type DataType = tensor.DataType

// Data type constants.
const (
	Float64 DataType = tensor.Float64
	Float32 DataType = tensor.Float32
	Dual    DataType = tensor.Dual
)

// BroadcastShapes computes the shape of an elementwise result.
// Returns the result shape, whether broadcasting was needed, and an error
// when the shapes are not compatible.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
