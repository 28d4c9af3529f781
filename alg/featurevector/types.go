package featurevector

// NotFound is the code of a feature key that is not in an Index.
const NotFound = -1

// Part is one field of a packed feature key: a value and the number of bits
// reserved for it.
type Part struct {
	Value uint64
	Bits  uint
}

// Pack combines parts into a single key, lowest field first. Each value
// must fit in its bit width; the caller guarantees the total width is at
// most 64 bits.
func Pack(parts ...Part) uint64 {
	var (
		key   uint64
		shift uint
	)
	for _, p := range parts {
		key |= p.Value << shift
		shift += p.Bits
	}
	return key
}

// Width is the total number of bits occupied by parts.
func Width(parts ...Part) uint {
	var w uint
	for _, p := range parts {
		w += p.Bits
	}
	return w
}
