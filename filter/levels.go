package filter

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"adam/config"
	"adam/types"
)

// AvailableLevels returns the distinct non-empty ILR levels in articles,
// sorted by their leading integer value ("1+" sorts as 1, after "1").
// Labels without a leading integer sort after the numeric ones. Falls
// back to config.DefaultLevels when there are none.
func AvailableLevels(articles []*types.Article) []string {
	seen := make(map[string]struct{})
	var levels []string
	for _, a := range articles {
		if a.ILRQuantized == nil || *a.ILRQuantized == "" {
			continue
		}
		if _, ok := seen[*a.ILRQuantized]; ok {
			continue
		}
		seen[*a.ILRQuantized] = struct{}{}
		levels = append(levels, *a.ILRQuantized)
	}

	if len(levels) == 0 {
		return slices.Clone(config.DefaultLevels)
	}
	slices.SortStableFunc(levels, compareLevels)
	return levels
}

// DefaultLevel picks the level selected after a catalog load: the
// preferred level when the catalog carries it, otherwise no level filter.
// Fallback levels do not count as carried.
func DefaultLevel(articles []*types.Article) string {
	for _, a := range articles {
		if a.ILRQuantized != nil && *a.ILRQuantized == config.PreferredLevel {
			return config.PreferredLevel
		}
	}
	return ""
}

func compareLevels(a, b string) int {
	ai, aOK := leadingInt(a)
	bi, bOK := leadingInt(b)
	switch {
	case aOK && bOK:
		if ai != bi {
			return cmp.Compare(ai, bi)
		}
		return strings.Compare(a, b)
	case aOK:
		return -1
	case bOK:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// leadingInt reads an optionally signed integer prefix of s
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
