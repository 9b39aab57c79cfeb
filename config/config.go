// Package config loads an optional TOML file overriding the default
// character sets and category requirement flags used by the interactive
// CLI. It never holds a master passphrase or any derived key material —
// only generator policy.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/stonepass/stonepass/password"
)

// DefaultPath is the default config file location, expanded against the
// user's home directory the same way the teacher's piknik.toml lookup
// does via go-homedir.
const DefaultPath = "~/.stonepass.toml"

// tomlConfig mirrors the teacher's tomlConfig pattern: a flat struct of
// optional fields decoded directly from the file, with zero values
// treated as "not set" by Load.
type tomlConfig struct {
	Uppercase string
	Lowercase string
	Digits    string
	Symbols   string

	RequireUppercase *bool
	RequireLowercase *bool
	RequireDigits    *bool
	RequireSymbols   *bool
}

// Load reads path (after home-directory expansion) and applies any
// overrides it contains on top of password.DefaultPolicy. A missing file
// is not an error: it simply means "use the built-in defaults", since
// unlike the teacher's PSK/signing-key config, this file is pure
// convenience rather than a credential store.
func Load(path string) (password.Policy, error) {
	policy := password.DefaultPolicy()

	expanded, err := homedir.Expand(path)
	if err != nil {
		return policy, fmt.Errorf("config: expanding path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return policy, nil
		}
		return policy, fmt.Errorf("config: reading %q: %w", expanded, err)
	}

	var tc tomlConfig
	if _, err := toml.Decode(string(data), &tc); err != nil {
		return policy, fmt.Errorf("config: parsing %q: %w", expanded, err)
	}

	if tc.Uppercase != "" {
		policy.Uppercase = tc.Uppercase
	}
	if tc.Lowercase != "" {
		policy.Lowercase = tc.Lowercase
	}
	if tc.Digits != "" {
		policy.Digits = tc.Digits
	}
	if tc.Symbols != "" {
		policy.Symbols = tc.Symbols
	}
	if tc.RequireUppercase != nil {
		policy.RequireUppercase = *tc.RequireUppercase
	}
	if tc.RequireLowercase != nil {
		policy.RequireLowercase = *tc.RequireLowercase
	}
	if tc.RequireDigits != nil {
		policy.RequireDigits = *tc.RequireDigits
	}
	if tc.RequireSymbols != nil {
		policy.RequireSymbols = *tc.RequireSymbols
	}
	return policy, nil
}
