package tensor

// DataType represents runtime type information for field values.
type DataType int

// Supported data types.
const (
	Float64 DataType = iota
	Float32
	// Dual is a float64 pair (real part, first-order infinitesimal part).
	Dual
)

// Size returns the byte size of one element of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	case Dual:
		return 16
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Dual:
		return "dual"
	default:
		return "unknown"
	}
}
