// Package uuidgen is an alternate transaction generator, grounded on
// jowharshamshiri/GoJanus's use of github.com/google/uuid for its own
// request correlation ids. It exists so callers who already standardize
// on uuid elsewhere in their stack don't have to pull in xid too.
package uuidgen

import "github.com/google/uuid"

// Generator produces random (v4) UUID transaction ids.
type Generator struct{}

// New returns a ready-to-use uuid-backed generator.
func New() Generator { return Generator{} }

// Generate implements transport.TransactionGenerator.
func (Generator) Generate() string {
	return uuid.NewString()
}
