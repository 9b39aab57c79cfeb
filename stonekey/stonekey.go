// Package stonekey implements StoneKey, a memory-hard, data-independent
// password-to-256-bit-key derivation function built from StoneHash and the
// ChaCha quarter-round: a fill phase populates a memory arena, a butterfly
// mixing network spreads long-range dependencies through it in
// O(N log N) work per time-cost unit, a compression phase folds the arena
// into a single accumulator, and a final StoneHash extraction guarantees
// uniform output even if the compression step is imperfect.
//
// The butterfly's access pattern depends only on the arena size, the
// round, and the (span, start, k) loop indices — never on secret data —
// which is what makes the indexing constant-time / side-channel-friendly.
package stonekey

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/stonepass/stonepass/arena"
	"github.com/stonepass/stonepass/block"
	"github.com/stonepass/stonepass/chacha"
	"github.com/stonepass/stonepass/stonehash"
)

// DefaultMCost is the recommended memory cost (2^20 blocks = 64 MiB).
const DefaultMCost = 20

// DefaultTCost is the recommended time cost (~1 second on 2025-era CPUs at
// DefaultMCost).
const DefaultTCost = 3

// MaxMCost enforces the 4 GiB hard cap (2^26 * 64 B).
const MaxMCost = 26

// MinMCost is the smallest permitted memory cost.
const MinMCost = 10

// goldenGamma is the 64-bit golden ratio constant used both as the
// butterfly round's counter increment and as an index-mixing multiplier
// in the compression phase.
const goldenGamma uint64 = 0x9e3779b97f4a7c15

// Kind classifies a stonekey Error.
type Kind int

const (
	// KindInvalidArgument covers an out-of-range cost or empty password.
	KindInvalidArgument Kind = iota
	// KindResourceExhaustion covers arena allocation failure.
	KindResourceExhaustion
)

// Error is returned by Derive. It carries a Kind so callers can
// distinguish "fix your call" from "the machine ran out of memory"
// without parsing the message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return "stonekey: " + e.Msg }

func invalidArg(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// Derive expands password + context into a 256-bit key using mCost (10..26,
// arena size 2^mCost 64-byte blocks) and tCost (>=1, number of butterfly
// mixing rounds). The password is absorbed into block 0 of the fill phase
// only; every other block depends on it transitively through mixing. The
// arena is wiped (and its page lock released) on every return path,
// including validation failures that occur after allocation.
func Derive(password, context string, mCost, tCost uint32) (block.Block32, error) {
	if password == "" {
		return block.Block32{}, invalidArg("password is empty")
	}
	if mCost < MinMCost {
		return block.Block32{}, invalidArg("m_cost too low (min %d)", MinMCost)
	}
	if mCost > MaxMCost {
		return block.Block32{}, invalidArg("m_cost too high (max %d: 4 GiB)", MaxMCost)
	}
	if tCost == 0 {
		return block.Block32{}, invalidArg("t_cost must be >= 1")
	}

	nBlocks := uint64(1) << mCost
	memory := make([]block.Block64, nBlocks)

	memBytes := bytesOf(memory)
	if err := arena.Lock(memBytes); err != nil {
		log.Printf("stonekey: arena lock failed: %v", err)
	}
	defer func() {
		for i := range memory {
			memory[i].Wipe()
		}
		_ = arena.Unlock(memBytes)
	}()

	fill(memory, password, context)

	counter := initialCounter(password)
	for round := uint32(0); round < tCost; round++ {
		counter += goldenGamma
		butterflyRound(memory, counter)
	}

	acc := compress(memory)

	out := stonehash.New()
	out.WriteString("StoneKey::v2::final")
	out.WriteString(password)
	out.WriteString(context)
	_, _ = out.Write(acc[:])
	return out.Sum256(), nil
}

// bytesOf reinterprets the arena slice's backing storage as a single byte
// slice for the purposes of page-locking, with no copy: Block64 is a
// [64]byte array with no padding, so the reinterpretation is safe, and a
// copy would defeat the point of locking (the copy itself would be
// unlocked and swappable).
func bytesOf(memory []block.Block64) []byte {
	if len(memory) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&memory[0])), len(memory)*64)
}

func fill(memory []block.Block64, password, context string) {
	for i := range memory {
		h := stonehash.New()
		h.WriteString("StoneHash::v2::fill")
		if context != "" {
			h.WriteString(context)
		}
		var idx [8]byte
		putUint64LE(idx[:], uint64(i))
		_, _ = h.Write(idx[:])
		if i == 0 {
			h.WriteString(password)
		}
		memory[i] = h.Finalize()
	}
}

func initialCounter(password string) uint64 {
	h := stonehash.New()
	h.WriteString("StoneHash::v2::counter_seed")
	h.WriteString(password)
	seed := h.Finalize()
	return goldenGamma ^ seed.U64(0)
}

// butterflyRound performs one full butterfly pass over memory for the
// given round counter seed: for each span = 1, 2, 4, ..., N/2 and each
// adjacent pair (a, b) at that span, mix b using a and an index+counter
// derived value, then fold b back into a. The (span, start, k) iteration
// order depends only on len(memory) — never on any data in memory — which
// is the property that makes this indexing scheme side-channel-friendly.
func butterflyRound(memory []block.Block64, counter uint64) {
	n := uint64(len(memory))
	for span := uint64(1); span < n; span *= 2 {
		for start := uint64(0); start < n; start += 2 * span {
			for k := uint64(0); k < span; k++ {
				a := start + k
				b := a + span

				var x, y [16]uint32
				memory[a].AsWords(&x)
				memory[b].AsWords(&y)

				mix := counter ^ (a<<32 | b)
				for i := 0; i < 16; i++ {
					y[i] ^= x[i] ^ uint32(mix>>(4*i))
				}

				chacha.QR(&y[0], &y[4], &y[8], &y[12])
				chacha.QR(&y[1], &y[5], &y[9], &y[13])
				chacha.QR(&y[2], &y[6], &y[10], &y[14])
				chacha.QR(&y[3], &y[7], &y[11], &y[15])

				for i := 0; i < 16; i++ {
					x[i] ^= y[i]
				}

				memory[b].FromWords(&y)
				memory[a].FromWords(&x)
			}
		}
	}
}

func compress(memory []block.Block64) block.Block64 {
	var acc block.Block64
	for i := range memory {
		var accWords, blkWords [16]uint32
		acc.AsWords(&accWords)
		memory[i].AsWords(&blkWords)
		for j := 0; j < 16; j++ {
			accWords[j] ^= blkWords[j]
		}
		acc.FromWords(&accWords)

		idx := uint64(i)
		acc.SetU64(0, acc.U64(0)^idx)
		acc.SetU64(1, acc.U64(1)^(idx<<32))
		acc.SetU64(2, acc.U64(2)^(idx*goldenGamma))
		acc.SetU64(3, acc.U64(3)^(idx*(goldenGamma>>13)))

		chacha.PermuteBlock(&acc, &acc)
	}
	chacha.PermuteBlock(&acc, &acc)
	return acc
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
