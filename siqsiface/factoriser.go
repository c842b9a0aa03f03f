// Package siqsiface breaks the cyclic dependency between the
// trial-division classifier and the nested SIQS instance it would need
// to split residues at or beyond 63 bits (spec §9, "cyclic dependency
// between the classifier and SIQS"). The classifier holds a Factoriser
// through this indirection rather than importing a concrete recursive
// SIQS type; an embedding application that builds a full sieve wires its
// own implementation in at construction.
package siqsiface

import (
	"context"
	"math/big"
)

// Factoriser finds a single nontrivial factor of a composite n. N is
// arbitrary precision because, unlike the classifier's 63-bit-bounded
// small-factor branches, a residue reaching this seam can be as large as
// the surrounding sieve's N itself.
type Factoriser interface {
	FindFactor(ctx context.Context, n *big.Int) (*big.Int, error)
}
