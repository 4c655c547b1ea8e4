// Package rcache implements the per-call-site method-dispatch cache: a
// single-slot memo of the last (receiver type, resolved method) pair seen
// at a given AST call node, so repeated calls on a stable receiver type
// skip the method-table walk. It is purely an optimization — identical in
// observable result to always re-resolving — and safe to omit.
package rcache

import "github.com/oxhq/veneer/internal/object"

// Site is embedded (by value) in an AST call node to give it its own
// cache slot. The zero value is an empty, always-missing cache.
type Site struct {
	typeName string
	fn       object.NativeFunc
	valid    bool
}

// Lookup returns the cached function pointer when recv's type matches the
// last call through this site, and ok=false (a cache miss the caller must
// resolve and Store) otherwise.
func (c *Site) Lookup(recv object.Object) (object.NativeFunc, bool) {
	if c.valid && c.typeName == recv.Type() {
		return c.fn, true
	}
	return nil, false
}

// Store records a freshly resolved (type, fn) pair for recv into the
// cache slot, overwriting whatever was there.
func (c *Site) Store(recv object.Object, fn object.NativeFunc) {
	c.typeName = recv.Type()
	c.fn = fn
	c.valid = true
}

// Reset invalidates the slot, used when an AST subtree carrying cache
// sites is relocated across evaluator instances (spec.md's invalidation
// rule — a moved call site must not serve a stale resolution).
func (c *Site) Reset() {
	c.valid = false
	c.fn = nil
	c.typeName = ""
}
