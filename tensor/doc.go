// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides shape and data type descriptors for symdiff values.
//
// # Overview
//
// Field values report a Shape and the execution graph stores one per vertex:
//   - Scalar (the empty shape) for Real and Dual values
//   - Shape{n} for a Vector of n elements
//   - nil when the shape is unknown before evaluation
//
// # Broadcasting
//
// BroadcastShapes follows NumPy rules. For the one-dimensional vector field
// this means a scalar or a length-1 vector combines with a vector of any
// length, and any other length mismatch is an error.
package tensor
