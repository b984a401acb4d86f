package structure

import (
	"fmt"
	"sort"
	"time"

	"git.home.luguber.info/inful/website-builder/internal/vfs"
)

// sortFiles orders files by the metadata key. Files without the key keep
// their relative order after all files that have it.
func sortFiles(files []*vfs.File, key string, reverse bool) {
	sort.SliceStable(files, func(i, j int) bool {
		a, aok := files[i].Metadata[key]
		b, bok := files[j].Metadata[key]
		switch {
		case !aok || !bok:
			return aok && !bok
		case reverse:
			return compareValues(b, a) < 0
		default:
			return compareValues(a, b) < 0
		}
	})
}

func compareValues(a, b any) int {
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if na, ok := number(a); ok {
		if nb, ok := number(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
