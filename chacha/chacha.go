// Package chacha implements the ChaCha20 block permutation (Bernstein,
// 2008) as a pure building block: the quarter-round, the 20-round (10
// double-round) permutation, and state builders for both the original
// Bernstein layout (64-bit nonce, 64-bit counter) and the RFC 8439 layout
// (96-bit nonce, 32-bit counter).
//
// This package intentionally exposes no XOR-with-plaintext encryption API.
// The permutation is consumed by stonehash (as a sponge round function),
// stonekey (as a mixing primitive), and stonerng (as a keystream
// generator) — none of which need, or should have access to, a general
// stream cipher.
package chacha

import (
	"math/bits"

	"github.com/stonepass/stonepass/block"
)

// KeySize is the ChaCha key size in 32-bit words.
const KeySize = 8

// Constants is the 4-word ChaCha constant "expand 32-byte k" in
// little-endian ASCII.
var Constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// QR performs one ChaCha quarter-round on a, b, c, d in place. All
// arithmetic is 32-bit wrapping, matching Go's default unsigned overflow
// behavior.
func QR(a, b, c, d *uint32) {
	*a += *b
	*d ^= *a
	*d = bits.RotateLeft32(*d, 16)
	*c += *d
	*b ^= *c
	*b = bits.RotateLeft32(*b, 12)
	*a += *b
	*d ^= *a
	*d = bits.RotateLeft32(*d, 8)
	*c += *d
	*b ^= *c
	*b = bits.RotateLeft32(*b, 7)
}

// PermuteWords applies the 20-round ChaCha permutation (10 double-rounds:
// four column quarter-rounds then four diagonal quarter-rounds) to in,
// adding the original input word-wise afterward, and writes the result to
// out. out and in may be the same array.
func PermuteWords(out, in *[16]uint32) {
	var x [16]uint32
	x = *in

	for r := 0; r < 10; r++ {
		QR(&x[0], &x[4], &x[8], &x[12])
		QR(&x[1], &x[5], &x[9], &x[13])
		QR(&x[2], &x[6], &x[10], &x[14])
		QR(&x[3], &x[7], &x[11], &x[15])

		QR(&x[0], &x[5], &x[10], &x[15])
		QR(&x[1], &x[6], &x[11], &x[12])
		QR(&x[2], &x[7], &x[8], &x[13])
		QR(&x[3], &x[4], &x[9], &x[14])
	}

	for i := 0; i < 16; i++ {
		out[i] = x[i] + in[i]
	}
}

// PermuteBlock applies PermuteWords to a 64-byte block view. dst and src
// may be the same block.
func PermuteBlock(dst, src *block.Block64) {
	var in, out [16]uint32
	src.AsWords(&in)
	PermuteWords(&out, &in)
	dst.FromWords(&out)
}

// BuildState constructs the original Bernstein-layout ChaCha state: four
// constant words, eight key words, a 64-bit counter split across words
// 12-13, and a 64-bit nonce in words 14-15. This layout must never be
// confused with the RFC 8439 layout produced by BuildStateIETF — the
// counter and nonce occupy different widths and positions in each.
func BuildState(key [8]uint32, nonce [2]uint32, counter uint64) block.Block64 {
	var s block.Block64
	var words [16]uint32
	words[0], words[1], words[2], words[3] = Constants[0], Constants[1], Constants[2], Constants[3]
	for i := 0; i < 8; i++ {
		words[4+i] = key[i]
	}
	words[12] = uint32(counter)
	words[13] = uint32(counter >> 32)
	words[14] = nonce[0]
	words[15] = nonce[1]
	s.FromWords(&words)
	return s
}

// BuildStateIETF constructs the RFC 8439 ChaCha state: four constant
// words, eight key words, a 32-bit counter in word 12, and a 96-bit nonce
// in words 13-15.
func BuildStateIETF(key [8]uint32, nonce [3]uint32, counter uint32) block.Block64 {
	var s block.Block64
	var words [16]uint32
	words[0], words[1], words[2], words[3] = Constants[0], Constants[1], Constants[2], Constants[3]
	for i := 0; i < 8; i++ {
		words[4+i] = key[i]
	}
	words[12] = counter
	words[13] = nonce[0]
	words[14] = nonce[1]
	words[15] = nonce[2]
	s.FromWords(&words)
	return s
}
