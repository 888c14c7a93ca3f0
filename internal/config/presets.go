package config

import "sort"

var Presets = map[string][]int{
	"classic":       {64, 34, 25, 12, 22, 11, 90},
	"reversed":      {10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
	"duplicates":    {5, 3, 5, 1, 3, 5, 1, 2},
	"nearly_sorted": {1, 2, 3, 5, 4, 6, 7, 9, 8, 10},
	"scenario":      {5, 3, 8, 1},
}

// GetPreset returns a copy of the named sequence, or nil.
func GetPreset(name string) []int {
	values, ok := Presets[name]
	if !ok {
		return nil
	}
	out := make([]int, len(values))
	copy(out, values)
	return out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
