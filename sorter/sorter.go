// Package sorter parses sorting strings such as "name:asc,size:desc" and applies them to slices.
package sorter

import (
	"slices"
	"strings"
)

type (
	SortOpts []Opt

	SortDirection string
)

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"

	// expectedPartsCount is the expected number of parts in a sort option (field:direction).
	expectedPartsCount = 2
)

// Opt represents a single sorting option, consisting of a field and a direction.
type Opt struct {
	F string        // F is the field to sort by.
	D SortDirection // D is the sorting direction (asc or desc).
}

// Make creates a slice of Opt from a variadic list of Opt.
func Make(sortOptions ...Opt) SortOpts {
	return sortOptions
}

// MakeFromStr parses a sorting string into options.
// Pairs with a field outside allowedFields or an unknown direction are dropped.
func MakeFromStr(sortString string, allowedFields ...string) SortOpts {
	if sortString == "" {
		return nil
	}

	var options []Opt
	for pair := range strings.SplitSeq(sortString, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) != expectedPartsCount {
			continue
		}

		key := strings.TrimSpace(parts[0])
		if !slices.Contains(allowedFields, key) {
			continue
		}

		direction := SortDirection(strings.ToLower(strings.TrimSpace(parts[1])))
		if direction != Asc && direction != Desc {
			continue
		}

		options = append(options, Opt{F: key, D: direction})
	}

	return options
}

// Comparators maps a field name to a three-way comparison of two items.
type Comparators[T any] map[string]func(a, b T) int

// Sort orders items by opts in priority order. The sort is stable, so items equal on every
// option keep their original order. Options naming a field without a comparator are ignored.
func Sort[T any](items []T, opts SortOpts, cmps Comparators[T]) {
	if len(opts) == 0 {
		return
	}

	slices.SortStableFunc(items, func(a, b T) int {
		for _, o := range opts {
			cmp, ok := cmps[o.F]
			if !ok {
				continue
			}
			c := cmp(a, b)
			if o.D == Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}
