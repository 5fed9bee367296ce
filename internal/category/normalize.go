// Package category canonicalizes category names for use as blacklist
// store keys.
package category

import "strings"

// replacer strips the characters the store key format excludes. The
// same rule is applied when writing and when looking up an entry, so
// spellings differing only in these characters collapse to one key.
var replacer = strings.NewReplacer(
	" ", "",
	"&", "",
	"'", "",
	",", "",
)

// Normalize returns the canonical store key for a raw category name.
// It removes spaces, ampersands, apostrophes, and commas. There is no
// case folding: "Tablecloths" and "tablecloths" are distinct keys.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return replacer.Replace(raw)
}
