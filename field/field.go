// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package field provides the value types that symbolic expressions compute
// over, and the kernel providers that evaluate named operations on them.
//
// Three fields are available:
//   - Real: a float64 scalar
//   - Vector: a float64 array with scalar broadcasting
//   - Dual: a forward-mode dual number whose infinitesimal part carries a
//     first derivative
//
// Custom fields implement Value and Kernels.
//
// Example:
//
//	k := field.NewDualKernels()
//	y := k.Sin(field.Seed(0.5))
//	// y.Emag() == math.Cos(0.5)
package field

import (
	"github.com/born-ml/symdiff/internal/field"
)

// Value is an element of an algebraic field.
type Value[X any] = field.Value[X]

// Kernels supplies the elementwise implementation of every operation.
type Kernels[X any] = field.Kernels[X]

// Common errors.
var (
	ErrNotScalar     = field.ErrNotScalar
	ErrShapeMismatch = field.ErrShapeMismatch
)

// Real is a float64 field value.
type Real = field.Real

// RealKernels evaluates operations with the math package.
type RealKernels = field.RealKernels

// NewRealKernels returns the kernels of the real field.
func NewRealKernels() RealKernels {
	return field.NewRealKernels()
}

// Vector is a one-dimensional float64 field value.
type Vector = field.Vector

// VectorKernels evaluates operations elementwise.
type VectorKernels = field.VectorKernels

// NewVector creates a vector holding a copy of data.
func NewVector(data ...float64) Vector {
	return field.NewVector(data...)
}

// NewVectorKernels returns the kernels of the vector field.
func NewVectorKernels() VectorKernels {
	return field.NewVectorKernels()
}

// Dual is a forward-mode dual number.
type Dual = field.Dual

// DualKernels evaluates operations on dual numbers.
type DualKernels = field.DualKernels

// NewDual creates real + emag·ϵ.
func NewDual(real, emag float64) Dual {
	return field.NewDual(real, emag)
}

// Seed creates x + 1·ϵ, the value of the variable a derivative is taken with
// respect to.
func Seed(x float64) Dual {
	return field.Seed(x)
}

// NewDualKernels returns the kernels of the dual field.
func NewDualKernels() DualKernels {
	return field.NewDualKernels()
}
