// Package palette assigns colours to series categories.
package palette

import (
	"github.com/linescope/linescope/internal/engine/types"
)

// Assignment is an ordinal mapping from category values to colours. The zero
// value is the "no colouring" assignment.
type Assignment struct {
	categories []string
	colors     []string
	index      map[string]int
}

// Assign collects the distinct values of key in first-seen order and pairs
// them with colors, cycling when there are more categories than colours.
// An empty key or palette yields the zero Assignment.
func Assign(data []types.Record, key string, colors []string) Assignment {
	if key == "" || len(colors) == 0 {
		return Assignment{}
	}
	a := Assignment{
		colors:     append([]string(nil), colors...),
		index:      map[string]int{},
		categories: []string{},
	}
	for _, r := range data {
		v, ok := r.Get(key)
		if !ok {
			continue
		}
		a.add(v.Text())
	}
	return a
}

func (a *Assignment) add(category string) int {
	if i, ok := a.index[category]; ok {
		return i
	}
	i := len(a.categories)
	a.index[category] = i
	a.categories = append(a.categories, category)
	return i
}

// OK reports whether colouring is enabled.
func (a Assignment) OK() bool { return len(a.colors) > 0 }

// Categories returns the categories in assignment order.
func (a Assignment) Categories() []string {
	if a.categories == nil {
		return nil
	}
	return append([]string(nil), a.categories...)
}

// Color returns the colour of a known category, or "" when the category was
// not in the data or colouring is disabled.
func (a Assignment) Color(category string) string {
	i, ok := a.index[category]
	if !ok {
		return ""
	}
	return a.colors[i%len(a.colors)]
}

// Lookup is Color with ordinal-scale semantics: an unseen category is
// appended to the domain and receives the next colour.
func (a *Assignment) Lookup(category string) string {
	if !a.OK() {
		return ""
	}
	return a.colors[a.add(category)%len(a.colors)]
}

// Stroke returns the colour of a series: the colour of its first record's
// category, or fallback.
func (a Assignment) Stroke(s types.Series, key, fallback string) string {
	if !a.OK() || len(s) == 0 {
		return fallback
	}
	v, ok := s[0].Get(key)
	if !ok {
		return fallback
	}
	if c := a.Color(v.Text()); c != "" {
		return c
	}
	return fallback
}
