// Package password composes a site-specific, deterministic password from a
// master passphrase using stonekey for key derivation and stonerng for
// drawing characters. The same (username, master password, site, version,
// policy) tuple always yields the same password; changing any one of them
// yields an unrelated one.
package password

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stonepass/stonepass/stonekey"
	"github.com/stonepass/stonepass/stonerng"
)

// Default character sets exclude characters that are easily confused in
// print or handwriting (I/l/1, O/o/0) and restrict symbols to ones widely
// accepted by website password policies.
const (
	DefaultUppercase = "ABCDEFGHJKLMNPQRSTUVWXYZ" // excludes I, O
	DefaultLowercase = "abcdefghijkmnpqrstuvwxyz" // excludes l, o
	DefaultDigits    = "23456789"                 // excludes 0, 1
	DefaultSymbols   = "@#$%&*()[]{};:,.?"
)

// MinLength and MaxLength bound the requested password length.
const (
	MinLength = 6
	MaxLength = 128
)

// Policy controls which character categories are drawn from and whether
// each is mandatory. Only required categories are drawn from: each
// contributes at least one character, and the fill pool is the
// concatenation of their charsets. A category with Require set to false
// contributes nothing, even if its charset is non-empty.
type Policy struct {
	Uppercase string
	Lowercase string
	Digits    string
	Symbols   string

	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSymbols   bool
}

// DefaultPolicy returns the recommended category defaults with all four
// categories required.
func DefaultPolicy() Policy {
	return Policy{
		Uppercase:        DefaultUppercase,
		Lowercase:        DefaultLowercase,
		Digits:           DefaultDigits,
		Symbols:          DefaultSymbols,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSymbols:   true,
	}
}

// Options carries everything Generate needs to reproduce one password.
type Options struct {
	Username       string
	MasterPassword string
	Site           string
	Version        int
	Length         int
	Policy         Policy

	// MCost and TCost override the KDF's memory/time cost. Zero means
	// "use stonekey's package defaults".
	MCost uint32
	TCost uint32
}

// DefaultOptions returns Options pre-filled with DefaultPolicy, version 1,
// and a length of 20. Username, MasterPassword, and Site are left empty
// and must be set by the caller.
func DefaultOptions() Options {
	return Options{
		Version: 1,
		Length:  20,
		Policy:  DefaultPolicy(),
	}
}

// Generate derives and returns the password for opts. The same opts
// always produce the same password; no state is retained between calls.
func Generate(opts Options) (string, error) {
	if err := validate(opts); err != nil {
		return "", err
	}

	ctx := buildContext(opts)

	mCost := opts.MCost
	if mCost == 0 {
		mCost = stonekey.DefaultMCost
	}
	tCost := opts.TCost
	if tCost == 0 {
		tCost = stonekey.DefaultTCost
	}

	key, err := stonekey.Derive(opts.MasterPassword, ctx, mCost, tCost)
	if err != nil {
		return "", fmt.Errorf("password: deriving key: %w", err)
	}
	defer key.Wipe()

	rng := stonerng.NewFromSeed32(key)

	required := requiredCategories(opts.Policy)
	allChars := unionCharset(opts.Policy)

	var sb strings.Builder
	sb.Grow(opts.Length)
	for _, charset := range required {
		c, err := draw(rng, charset)
		if err != nil {
			return "", fmt.Errorf("password: drawing required character: %w", err)
		}
		sb.WriteByte(c)
	}
	for sb.Len() < opts.Length {
		c, err := draw(rng, allChars)
		if err != nil {
			return "", fmt.Errorf("password: drawing fill character: %w", err)
		}
		sb.WriteByte(c)
	}

	buf := []byte(sb.String())
	if err := fisherYatesShuffle(buf, rng); err != nil {
		return "", fmt.Errorf("password: shuffling: %w", err)
	}

	return string(buf), nil
}

// fisherYatesShuffle permutes buf in place, drawing each swap index from
// rng via Unbiased so that, for an unbiased rng, every permutation of buf
// is equally likely.
func fisherYatesShuffle(buf []byte, rng *stonerng.RNG) error {
	for i := len(buf) - 1; i > 0; i-- {
		j, err := rng.Unbiased(0, uint64(i))
		if err != nil {
			return err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}

func draw(rng *stonerng.RNG, charset string) (byte, error) {
	maxIndex := uint64(len(charset) - 1)
	idx, err := rng.Unbiased(0, maxIndex)
	if err != nil {
		return 0, err
	}
	return charset[idx], nil
}

func validate(opts Options) error {
	if opts.Username == "" {
		return errors.New("password: username cannot be empty")
	}
	if opts.MasterPassword == "" {
		return errors.New("password: master password cannot be empty")
	}
	if opts.Site == "" {
		return errors.New("password: site cannot be empty")
	}
	if opts.Length < MinLength || opts.Length > MaxLength {
		return fmt.Errorf("password: length must be %d-%d", MinLength, MaxLength)
	}
	if opts.Version < 1 {
		return errors.New("password: version must be >= 1")
	}

	p := opts.Policy
	if p.RequireUppercase && p.Uppercase == "" {
		return errors.New("password: cannot require uppercase with an empty charset")
	}
	if p.RequireLowercase && p.Lowercase == "" {
		return errors.New("password: cannot require lowercase with an empty charset")
	}
	if p.RequireDigits && p.Digits == "" {
		return errors.New("password: cannot require digits with an empty charset")
	}
	if p.RequireSymbols && p.Symbols == "" {
		return errors.New("password: cannot require symbols with an empty charset")
	}

	requiredCount := 0
	if p.RequireUppercase {
		requiredCount++
	}
	if p.RequireLowercase {
		requiredCount++
	}
	if p.RequireDigits {
		requiredCount++
	}
	if p.RequireSymbols {
		requiredCount++
	}
	if opts.Length < requiredCount {
		return errors.New("password: length too short for the required categories")
	}
	return nil
}

// requiredCategories returns the charsets that must each contribute at
// least one drawn character, in upper/lower/digits/symbols order —
// matching the composer's fixed drawing order so that the same inputs
// always land the same characters in the same draw sequence.
func requiredCategories(p Policy) []string {
	var out []string
	if p.RequireUppercase {
		out = append(out, p.Uppercase)
	}
	if p.RequireLowercase {
		out = append(out, p.Lowercase)
	}
	if p.RequireDigits {
		out = append(out, p.Digits)
	}
	if p.RequireSymbols {
		out = append(out, p.Symbols)
	}
	return out
}

// unionCharset concatenates the required categories' charsets, in the
// same fixed order, for drawing fill characters after the required
// categories are satisfied.
func unionCharset(p Policy) string {
	var sb strings.Builder
	if p.RequireUppercase {
		sb.WriteString(p.Uppercase)
	}
	if p.RequireLowercase {
		sb.WriteString(p.Lowercase)
	}
	if p.RequireDigits {
		sb.WriteString(p.Digits)
	}
	if p.RequireSymbols {
		sb.WriteString(p.Symbols)
	}
	return sb.String()
}

// buildContext renders the canonical, NUL-separated context string that
// binds the derived key to exactly one (username, site, version, length,
// required-category flags) tuple. Any change to these fields — including
// which categories are required — produces an unrelated key. The charset
// strings themselves are not part of the context.
func buildContext(opts Options) string {
	p := opts.Policy
	var sb strings.Builder
	sb.WriteString("StonePassword_v1.0\x00")
	sb.WriteString(strconv.Itoa(opts.Version))
	sb.WriteByte(0)
	sb.WriteString(opts.Username)
	sb.WriteByte(0)
	sb.WriteString(opts.Site)
	sb.WriteByte(0)
	sb.WriteString("len:")
	sb.WriteString(strconv.Itoa(opts.Length))
	sb.WriteString("\x00upper:")
	sb.WriteString(boolFlag(p.RequireUppercase))
	sb.WriteString("\x00lower:")
	sb.WriteString(boolFlag(p.RequireLowercase))
	sb.WriteString("\x00digits:")
	sb.WriteString(boolFlag(p.RequireDigits))
	sb.WriteString("\x00symbols:")
	sb.WriteString(boolFlag(p.RequireSymbols))
	return sb.String()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
