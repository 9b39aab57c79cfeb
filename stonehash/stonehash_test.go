package stonehash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizeIsDeterministic(t *testing.T) {
	d1 := Sum512([]byte("hello world"))
	d2 := Sum512([]byte("hello world"))
	require.Equal(t, d1, d2)
}

func TestSum256IsPrefixOfSum512(t *testing.T) {
	h := New()
	h.WriteString("abc")
	full := h.Finalize()

	h2 := New()
	h2.WriteString("abc")
	half := h2.Sum256()

	require.Equal(t, full[:32], half[:])
}

func TestChunkingDoesNotAffectDigest(t *testing.T) {
	msg := []byte("The quick brown fox jumps over the lazy dog, and then some more bytes to span multiple 64-byte blocks of sponge absorption.")

	whole := Sum512(msg)

	h := New()
	for i := 0; i < len(msg); i++ {
		_, _ = h.Write(msg[i : i+1])
	}
	chunked := h.Finalize()

	require.Equal(t, whole, chunked)

	h2 := New()
	_, _ = h2.Write(msg[:7])
	_, _ = h2.Write(msg[7:64])
	_, _ = h2.Write(msg[64:])
	arbitrary := h2.Finalize()

	require.Equal(t, whole, arbitrary)
}

func TestEmptyAndNonEmptyDiffer(t *testing.T) {
	empty := Sum512(nil)
	abc := Sum512([]byte("abc"))
	require.NotEqual(t, empty, abc)
}

func TestSingleBitChangeAltersDigest(t *testing.T) {
	a := Sum512([]byte("StonePassword_v1.0"))
	b := Sum512([]byte("StonePassword_v1.1"))
	require.NotEqual(t, a, b)
}

func TestDomainSeparationLabelMatters(t *testing.T) {
	withLabel := Sum512([]byte("StoneHash::v2::fill"), []byte("context"))
	withoutLabel := Sum512([]byte("context"))
	require.NotEqual(t, withLabel, withoutLabel)
}

func TestWriteAfterFinalizePanics(t *testing.T) {
	h := New()
	h.WriteString("x")
	h.Finalize()
	require.Panics(t, func() {
		h.WriteString("y")
	})
}

func TestResetAllowsReuse(t *testing.T) {
	h := New()
	h.WriteString("first")
	d1 := h.Finalize()

	h.Reset()
	h.WriteString("first")
	d2 := h.Finalize()

	require.Equal(t, d1, d2)
}

func TestLengthAffectsDigestEvenWithSameBytes(t *testing.T) {
	// "a" followed by a zero byte pads to exactly the same final block as
	// "a" alone, so only the injected total length tells the two apart: a
	// message extended with trailing zeros must not collide with the
	// shorter message.
	a := Sum512([]byte("a\x00"))
	b := Sum512([]byte("a"))
	require.NotEqual(t, a, b)
}
