package chacha

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPermuteBlockRFC8439Vector locks the permutation against the
// published RFC 8439 2.3.2 test vector for the ChaCha20 block function:
// key bytes 00..1f, nonce 00:00:00:09:00:00:00:4a:00:00:00:00, counter 1.
func TestPermuteBlockRFC8439Vector(t *testing.T) {
	var key [8]uint32
	for i := 0; i < 8; i++ {
		b0 := byte(4 * i)
		key[i] = uint32(b0) | uint32(b0+1)<<8 | uint32(b0+2)<<16 | uint32(b0+3)<<24
	}
	nonce := [3]uint32{0x09000000, 0x4a000000, 0x00000000}

	state := BuildStateIETF(key, nonce, 1)

	var in [16]uint32
	state.AsWords(&in)
	require.Equal(t, [16]uint32{
		0x61707865, 0x3320646e, 0x79622d32, 0x6b206574,
		0x03020100, 0x07060504, 0x0b0a0908, 0x0f0e0d0c,
		0x13121110, 0x17161514, 0x1b1a1918, 0x1f1e1d1c,
		0x00000001, 0x09000000, 0x4a000000, 0x00000000,
	}, in)

	var out [16]uint32
	PermuteWords(&out, &in)

	want := [16]uint32{
		0x837778ab, 0xe238d763, 0xa67ae21e, 0x5950bb2f,
		0xc4f2d0c7, 0xfc62bb2f, 0x8fa018fc, 0x3f5ec7b7,
		0x335271c2, 0xf29489f3, 0xeabda8fc, 0x82e46ebd,
		0xd19c12b4, 0xb04e16de, 0x9e83d0cb, 0x4e3c50a2,
	}
	require.Equal(t, want, out)
}

func TestQRVector(t *testing.T) {
	// RFC 8439 2.1.1 quarter round test vector.
	a, b, c, d := uint32(0x11111111), uint32(0x01020304), uint32(0x9b8d6f43), uint32(0x01234567)
	QR(&a, &b, &c, &d)
	require.Equal(t, uint32(0xea2a92f4), a)
	require.Equal(t, uint32(0xcb1cf8ce), b)
	require.Equal(t, uint32(0x4581472e), c)
	require.Equal(t, uint32(0x5881c4bb), d)
}

func TestPermuteBlockAliasing(t *testing.T) {
	key := [8]uint32{1, 2, 3, 4, 5, 6, 7, 8}
	nonce := [2]uint32{9, 10}
	s := BuildState(key, nonce, 0)

	var out [16]uint32
	var in [16]uint32
	s.AsWords(&in)
	PermuteWords(&out, &in)

	aliased := s
	PermuteBlock(&aliased, &aliased)

	var aliasedWords [16]uint32
	aliased.AsWords(&aliasedWords)
	require.Equal(t, out, aliasedWords)
}

func TestBuildStateLayouts(t *testing.T) {
	key := [8]uint32{}
	nonce64 := [2]uint32{0x11, 0x22}
	s := BuildState(key, nonce64, 0x0102030405060708)
	require.Equal(t, uint32(0x05060708), s.U32(12))
	require.Equal(t, uint32(0x01020304), s.U32(13))
	require.Equal(t, uint32(0x11), s.U32(14))
	require.Equal(t, uint32(0x22), s.U32(15))

	nonce96 := [3]uint32{0x33, 0x44, 0x55}
	sIETF := BuildStateIETF(key, nonce96, 0x0a0b0c0d)
	require.Equal(t, uint32(0x0a0b0c0d), sIETF.U32(12))
	require.Equal(t, uint32(0x33), sIETF.U32(13))
	require.Equal(t, uint32(0x44), sIETF.U32(14))
	require.Equal(t, uint32(0x55), sIETF.U32(15))
}
