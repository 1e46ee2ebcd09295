package types

type IntentKind string

const (
	ValuesIntent    IntentKind = "values"
	RangeIntent     IntentKind = "range"
	DateRangeIntent IntentKind = "date_range"
)

// FilterIntent is the normalized selection of one facet, derived from request
// parameters. Range bounds stay nil when the parameter was missing or did not
// parse as a number; a nil bound falls back to the facet's configured bound
// during translation.
type FilterIntent struct {
	Slug   string     `json:"slug"`
	Kind   IntentKind `json:"kind"`
	Values []string   `json:"values,omitempty"`
	Min    *float64   `json:"min,omitempty"`
	Max    *float64   `json:"max,omitempty"`
	From   string     `json:"from,omitempty"`
	To     string     `json:"to,omitempty"`
}

func (i *FilterIntent) IsEmpty() bool {
	switch i.Kind {
	case RangeIntent:
		return i.Min == nil && i.Max == nil
	case DateRangeIntent:
		return i.From == "" && i.To == ""
	default:
		return len(i.Values) == 0
	}
}

func (i *FilterIntent) FirstValue() string {
	if len(i.Values) == 0 {
		return ""
	}
	return i.Values[0]
}

// ActiveFilter is one entry of the active-filter summary shown above a results
// grid.
type ActiveFilter struct {
	Slug      string `json:"slug"`
	Label     string `json:"label"`
	Value     string `json:"value"`
	RemoveUrl string `json:"removeUrl"`
}
