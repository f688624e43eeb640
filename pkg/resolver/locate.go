package resolver

import (
	"os"
	"path/filepath"
)

// UnitExt is the file extension implied by the unit-name-to-file-name
// convention: unit Foo lives in Foo.sl.
const UnitExt = ".sl"

// locate searches the ordered directory list for a file named
// <name>.sl. The first match wins, so a unit found under an earlier
// directory masks a same-named file under a later one (vendor/override
// precedence). The match is exact and case-sensitive regardless of the
// filesystem: directory entries are compared by name rather than
// stat'ed, so MAIN.sl never satisfies a request for Main.
func locate(name string, dirs []string) (path, dir string, ok bool) {
	want := name + UnitExt
	for _, d := range dirs {
		entries, err := os.ReadDir(d)
		if err != nil {
			continue // unreadable or absent directories are skipped
		}
		for _, e := range entries {
			if !e.IsDir() && e.Name() == want {
				return filepath.Join(d, want), d, true
			}
		}
	}
	return "", "", false
}
