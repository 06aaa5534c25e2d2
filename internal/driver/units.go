package driver

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverUnits expands roots (doublestar glob patterns, e.g.
// "**/*.reso") into the ordered, deduplicated list of compilation
// units a build walks. Roots are expanded in the order given and each
// root's own matches are sorted, so the result is deterministic
// across runs on the same filesystem state; later roots contribute
// only files not already seen from an earlier one.
func DiscoverUnits(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, pattern := range roots {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, wrap(ErrIO, "invalid glob pattern "+pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, CLIError{Code: ErrNoUnitsMatched, Message: "no compilation units matched the given roots"}
	}
	return out, nil
}
