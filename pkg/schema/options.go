package schema

// Status is one entry of the status catalog. Statuses carry their own
// scope because projects routinely restrict a status to a subset of
// entity types (e.g., "Omitted" applies to products but not tasks).
type Status struct {
	Name      string       `yaml:"name" json:"name"`
	Scope     []EntityType `yaml:"scope,omitempty" json:"scope,omitempty"`
	Color     string       `yaml:"color,omitempty" json:"color,omitempty"`
	ShortName string       `yaml:"shortName,omitempty" json:"shortName,omitempty"`
}

// AppliesTo reports whether the status is available for the given
// entity type. An empty scope means every entity type.
func (s Status) AppliesTo(et EntityType) bool {
	if len(s.Scope) == 0 {
		return true
	}
	for _, scoped := range s.Scope {
		if scoped == et {
			return true
		}
	}
	return false
}

// Assignee identifies a user that can be assigned to a task row.
type Assignee struct {
	Name     string `yaml:"name" json:"name"`
	FullName string `yaml:"fullName,omitempty" json:"fullName,omitempty"`
}

// Catalogs bundles the per-project option catalogs the builder needs
// for enum ordering and the renderer needs for option display. All
// slices are in their declared (domain-meaningful) order.
type Catalogs struct {
	Statuses    []Status   `yaml:"statuses,omitempty" json:"statuses,omitempty"`
	FolderTypes []string   `yaml:"folderTypes,omitempty" json:"folderTypes,omitempty"`
	TaskTypes   []string   `yaml:"taskTypes,omitempty" json:"taskTypes,omitempty"`
	Assignees   []Assignee `yaml:"assignees,omitempty" json:"assignees,omitempty"`
	Tags        []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// StatusesFor returns the statuses applicable to the given entity type,
// preserving catalog order.
func (c Catalogs) StatusesFor(et EntityType) []Status {
	out := make([]Status, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		if s.AppliesTo(et) {
			out = append(out, s)
		}
	}
	return out
}

// StatusIndex returns the catalog position of a status name, or -1 when
// unknown. Used by the status column's sort strategy so rows order by
// pipeline stage rather than alphabetically.
func (c Catalogs) StatusIndex(name string) int {
	for i, s := range c.Statuses {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// SubTypesFor returns the folder or task type names for the given
// entity type. Other entity types have no sub-type column values.
func (c Catalogs) SubTypesFor(et EntityType) []string {
	switch et {
	case EntityFolder:
		return c.FolderTypes
	case EntityTask:
		return c.TaskTypes
	default:
		return nil
	}
}
