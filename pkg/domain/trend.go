package domain

// YearBucket counts the tag's tracks released in one year.
type YearBucket struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// Coverage reports how many of the fetched tracks had a usable year.
// Percentage is omitted when Total is zero.
type Coverage struct {
	Total      int    `json:"total" yaml:"total"`
	WithDate   int    `json:"withDate" yaml:"withDate"`
	Percentage string `json:"percentage,omitempty" yaml:"percentage,omitempty"`
}

// TrendResult is the per-year distribution of a tag's top tracks, ordered by year.
type TrendResult struct {
	Tag      string       `json:"tag" yaml:"tag"`
	Trends   []YearBucket `json:"trends" yaml:"trends"`
	Coverage Coverage     `json:"coverage" yaml:"coverage"`
}

// TrendQuery parameterises a trend aggregation. Nil years leave that side of the range open.
type TrendQuery struct {
	Tag      string
	Limit    int
	FromYear *int
	ToYear   *int
}

// Contains reports whether year falls inside the query's optional range.
func (q TrendQuery) Contains(year int) bool {
	if q.FromYear != nil && year < *q.FromYear {
		return false
	}
	if q.ToYear != nil && year > *q.ToYear {
		return false
	}
	return true
}
