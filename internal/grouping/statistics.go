package grouping

type GroupSize struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Statistics struct {
	TotalGroups  int            `json:"total_groups"`
	TotalRecords int            `json:"total_records"`
	GroupSizes   map[string]int `json:"group_sizes"`
	Largest      GroupSize      `json:"largest_group"`
	Smallest     GroupSize      `json:"smallest_group"` // только непустые группы
}

// Statistics считает размеры групп. При равенстве побеждает группа,
// встреченная первой.
func (g Grouped[T]) Statistics() Statistics {
	stats := Statistics{
		TotalGroups: len(g),
		GroupSizes:  make(map[string]int, len(g)),
	}

	for _, group := range g {
		size := len(group.Records)
		stats.TotalRecords += size
		stats.GroupSizes[group.Key] = size

		if size > stats.Largest.Size {
			stats.Largest = GroupSize{Name: group.Key, Size: size}
		}

		if size > 0 && (stats.Smallest.Size == 0 || size < stats.Smallest.Size) {
			stats.Smallest = GroupSize{Name: group.Key, Size: size}
		}
	}

	return stats
}
