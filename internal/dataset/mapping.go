package dataset

import (
	"strings"

	"github.com/gantt-tools/gantt-go/internal/table"
)

// Mapping selects the source columns for the three required roles.
type Mapping struct {
	Activity string `json:"activity" yaml:"activity"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
}

// MapOptions controls the schema projection.
type MapOptions struct {
	// RetainOptional keeps unselected Completion and Category columns.
	RetainOptional bool
}

type roleSelection struct {
	role      string
	canonical string
	source    string
}

// selections returns the roles in the order their renames are applied.
func (m Mapping) selections() []roleSelection {
	return []roleSelection{
		{role: "activity", canonical: ColActivity, source: m.Activity},
		{role: "start date", canonical: ColStart, source: m.Start},
		{role: "end date", canonical: ColEnd, source: m.End},
	}
}

// IsZero returns true if no role is selected.
func (m Mapping) IsZero() bool {
	return m.Activity == "" && m.Start == "" && m.End == ""
}

// ApplyMapping renames the selected columns to the canonical names and
// projects the table down to the canonical columns. The input table is
// never modified.
//
// Renames are keyed by source column and applied in role order, so when two
// roles select the same source column the later role's name wins. The
// canonical column that lost the collision is taken from an unrenamed source
// column already carrying that name, or filled with empty cells.
func ApplyMapping(t *table.Table, m Mapping, opts MapOptions) (*table.Table, error) {
	var missing []string
	for _, sel := range m.selections() {
		if strings.TrimSpace(sel.source) == "" {
			missing = append(missing, sel.role)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteMappingError{Missing: missing}
	}

	rename := make(map[string]string, 3)
	for _, sel := range m.selections() {
		if !t.Has(sel.source) {
			return nil, &UnknownColumnError{Column: sel.source}
		}
		rename[sel.source] = sel.canonical
	}

	names := RequiredColumns()
	sources := make([]int, len(names))
	for i, canonical := range names {
		sources[i] = -1
		for src, dst := range rename {
			if dst == canonical {
				sources[i] = t.Index(src)
			}
		}
		if sources[i] >= 0 {
			continue
		}
		if _, renamed := rename[canonical]; !renamed {
			sources[i] = t.Index(canonical)
		}
	}

	if opts.RetainOptional {
		columns := t.Columns()
		for _, optional := range OptionalColumns() {
			idx := t.IndexFold(optional)
			if idx < 0 {
				continue
			}
			if _, selected := rename[columns[idx]]; selected {
				continue
			}
			names = append(names, optional)
			sources = append(sources, idx)
		}
	}

	return t.Select(names, sources)
}

// AutoMapping returns the identity mapping when every required canonical
// column is present, matching names case-insensitively.
func AutoMapping(columns []string) (Mapping, bool) {
	find := func(name string) string {
		for _, col := range columns {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return col
			}
		}
		return ""
	}
	m := Mapping{Activity: find(ColActivity), Start: find(ColStart), End: find(ColEnd)}
	if m.Activity == "" || m.Start == "" || m.End == "" {
		return Mapping{}, false
	}
	return m, true
}

var roleHints = map[string][]string{
	ColActivity: {"activity", "task", "name", "title", "item", "description"},
	ColStart:    {"start", "begin", "from"},
	ColEnd:      {"end", "finish", "due", "until", "to"},
}

// SuggestMapping guesses a mapping from column names for pre-filling the
// mapping form. Roles without a plausible column stay empty.
func SuggestMapping(columns []string) Mapping {
	if m, ok := AutoMapping(columns); ok {
		return m
	}
	used := make(map[string]bool)
	pick := func(canonical string) string {
		for _, hint := range roleHints[canonical] {
			for _, col := range columns {
				lower := strings.ToLower(strings.TrimSpace(col))
				if !used[col] && (lower == hint || strings.HasPrefix(lower, hint+" ") || strings.HasPrefix(lower, hint+"_")) {
					used[col] = true
					return col
				}
			}
		}
		return ""
	}
	return Mapping{Activity: pick(ColActivity), Start: pick(ColStart), End: pick(ColEnd)}
}
