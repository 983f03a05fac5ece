package permission

// Mask64 is a 64-bit permission set. Bit positions come from the frozen
// registry; the highest bit is reserved as the root bit and short-circuits
// every check.
type Mask64 uint64

const rootBit = 63

func (m Mask64) has(bit int) bool {
	if bit < 0 || bit >= 64 {
		return false
	}

	if m&(1<<rootBit) != 0 {
		return true
	}

	return m&(1<<bit) != 0
}

func (m *Mask64) set(bit int) {
	if bit < 0 || bit >= 64 {
		return
	}
	*m |= 1 << bit
}

// Has reports whether the mask grants the permission. A mask carrying the
// root bit grants everything in the vocabulary.
func (m Mask64) Has(p Permission) bool {
	bit, ok := registry.bit(p)
	if !ok {
		return false
	}
	return m.has(bit)
}

// HasAny reports whether the mask grants at least one of the permissions.
func (m Mask64) HasAny(perms ...Permission) bool {
	for _, p := range perms {
		if m.Has(p) {
			return true
		}
	}
	return false
}

// Union returns the combined mask.
func (m Mask64) Union(other Mask64) Mask64 {
	return m | other
}

// Raw exposes the underlying bits for persistence or diagnostics.
func (m Mask64) Raw() uint64 {
	return uint64(m)
}
