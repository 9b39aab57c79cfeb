// Package stonehash implements StoneHash, a sponge-like hash construction
// built over the ChaCha20 permutation: absorb arbitrary bytes by XOR into
// a 64-byte state between permutation calls, then finalize with a
// domain-separating final-block flag and an injected message length.
package stonehash

import (
	"math/bits"

	"github.com/stonepass/stonepass/block"
	"github.com/stonepass/stonepass/chacha"
)

// Hash absorbs bytes and finalizes to a 512- or 256-bit digest. The zero
// value is ready to use. A Hash must not be reused after Finalize/Sum256
// without calling Reset.
type Hash struct {
	state      block.Block64
	pending    [64]byte
	pendingLen int
	total      uint64
	done       bool
}

// New returns a ready-to-use Hash.
func New() *Hash {
	return &Hash{}
}

// Reset restores the Hash to its initial, empty state.
func (h *Hash) Reset() {
	h.state.Wipe()
	for i := range h.pending {
		h.pending[i] = 0
	}
	h.pendingLen = 0
	h.total = 0
	h.done = false
}

// Write absorbs p into the sponge. It never returns an error and always
// consumes all of p, satisfying io.Writer. Write panics if called after
// Finalize/Sum256 without an intervening Reset, since reusing a finalized
// Hash silently would produce a digest over a message the caller never
// intended to hash.
func (h *Hash) Write(p []byte) (int, error) {
	if h.done {
		panic("stonehash: Write called on a finalized Hash; call Reset first")
	}
	n := len(p)
	h.total += uint64(n)

	for len(p) > 0 {
		space := 64 - h.pendingLen
		take := space
		if take > len(p) {
			take = len(p)
		}
		copy(h.pending[h.pendingLen:h.pendingLen+take], p[:take])
		h.pendingLen += take
		p = p[take:]

		if h.pendingLen == 64 {
			h.absorbBlock()
		}
	}
	return n, nil
}

// WriteString is a convenience wrapper avoiding an explicit []byte
// conversion at call sites, matching the teacher's habit of absorbing
// string literals directly (see the blake2.Config usage throughout the
// original auth chain).
func (h *Hash) WriteString(s string) {
	_, _ = h.Write([]byte(s))
}

func (h *Hash) absorbBlock() {
	var blk block.Block64
	copy(blk[:], h.pending[:64])
	h.state.Xor(&h.state, &blk)
	chacha.PermuteBlock(&h.state, &h.state)
	h.pendingLen = 0
}

// Finalize XORs the zero-padded residual bytes and the final-block
// domain-separation constant into the state, injects rotl(total_bytes, 3)
// into words 12-13, applies the permutation once, and returns the
// resulting 64-byte digest. The Hash must not be written to afterward
// without Reset.
func (h *Hash) Finalize() block.Block64 {
	var blk block.Block64
	copy(blk[:], h.pending[:h.pendingLen])
	h.state.Xor(&h.state, &blk)

	h.state.SetU32(0, h.state.U32(0)^0x01)

	bitLen := bits.RotateLeft64(h.total, 3)
	h.state.SetU32(12, h.state.U32(12)^uint32(bitLen))
	h.state.SetU32(13, h.state.U32(13)^uint32(bitLen>>32))

	chacha.PermuteBlock(&h.state, &h.state)
	h.done = true
	return h.state
}

// Sum256 returns the first 256 bits of Finalize's 512-bit digest.
func (h *Hash) Sum256() block.Block32 {
	full := h.Finalize()
	var out block.Block32
	copy(out[:], full[:32])
	return out
}

// Sum512 computes the digest of data in one call, without affecting any
// existing Hash state. Convenience wrapper for one-shot domain-separated
// hashing, the common case throughout stonekey.
func Sum512(parts ...[]byte) block.Block64 {
	h := New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Finalize()
}

// Sum256Of computes the 256-bit digest of data in one call.
func Sum256Of(parts ...[]byte) block.Block32 {
	h := New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	return h.Sum256()
}
