package model

// MonthOption is one entry of the month filter.
type MonthOption struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	HasEvents bool   `json:"hasEvents"`
	Count     int    `json:"count"`
}

// CategoryOption is one entry of the category filter.
type CategoryOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Count int    `json:"count"`
}
