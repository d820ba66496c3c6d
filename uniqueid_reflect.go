//go:build nounsafe

package lispy

import "reflect"

// The default implementation of UniqueID uses unsafe.Pointer. If you can't use
// packages importing unsafe, you can build with -tags=nounsafe to select this
// implementation instead at a cost to name lookups.

// UniqueID returns the environment's address.
func (e *Env) UniqueID() uintptr {
	return reflect.ValueOf(e).Pointer()
}
