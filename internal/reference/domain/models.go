package domain

// Region is a New Zealand region used as service-area vocabulary.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
