// Package xidgen is the default transaction generator, grounded directly
// on the teacher's own choice of github.com/rs/xid for correlation ids.
package xidgen

import "github.com/rs/xid"

// Generator produces globally-ordered, compact transaction ids.
type Generator struct{}

// New returns a ready-to-use xid-backed generator.
func New() Generator { return Generator{} }

// Generate implements transport.TransactionGenerator.
func (Generator) Generate() string {
	return xid.New().String()
}
