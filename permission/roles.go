package permission

var roleMasks map[Role]Mask64

func buildRoleMasks() {
	roleMasks = make(map[Role]Mask64, len(rolePermissions))

	for role, perms := range rolePermissions {
		var mask Mask64
		for _, p := range perms {
			bit, ok := registry.bit(p)
			if !ok {
				panic("permission: role " + string(role) + " references unregistered permission " + string(p))
			}
			mask.set(bit)
		}
		roleMasks[role] = mask
	}
}

// RoleMask returns the permission mask for a role, or false for a role name
// outside the vocabulary.
func RoleMask(r Role) (Mask64, bool) {
	mask, ok := roleMasks[r]
	return mask, ok
}

// MaskFor unions the masks of the given roles. Unknown role names contribute
// nothing.
func MaskFor(roles ...Role) Mask64 {
	var mask Mask64
	for _, r := range roles {
		if m, ok := roleMasks[r]; ok {
			mask = mask.Union(m)
		}
	}
	return mask
}

// Grants lists the permissions a role mask carries, in vocabulary order.
func (m Mask64) Grants() []Permission {
	var out []Permission
	for _, p := range vocabulary {
		if m.Has(p) {
			out = append(out, p)
		}
	}
	return out
}
