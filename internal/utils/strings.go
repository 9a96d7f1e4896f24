package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-viper/mapstructure/v2"
)

// Capitalize returns s with its first rune upper-cased. The rest of the
// string is left untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// Interp replaces every {key} placeholder in tmpl with the matching value
// from vars. Placeholders without a matching key are left as-is.
func Interp(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}

	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// InterpValues is Interp for structs and loosely typed maps. The data is
// decoded into string variables first, so numeric fields interpolate too.
func InterpValues(tmpl string, data any) (string, error) {
	vars := make(map[string]string)

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &vars,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build decoder for InterpValues: %w", err)
	}

	if err := dec.Decode(data); err != nil {
		return "", fmt.Errorf("failed to decode values for InterpValues: %w", err)
	}

	return Interp(tmpl, vars), nil
}
