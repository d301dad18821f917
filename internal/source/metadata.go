package source

// Metadata describes the source for host UIs. It is passed through for
// display and never consumed by the scheduling algorithm.
type Metadata struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Arguments   []Argument `json:"arguments"`
}

// Argument describes one user-facing configuration option.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Describe returns the source metadata.
func Describe() Metadata {
	return Metadata{
		Title:       Title,
		Description: Description,
		URL:         InfoURL,
		Arguments: []Argument{
			{
				Name:        "street",
				Description: "Street name as published on the town's collection schedule page. Naming variants are matched approximately.",
				Required:    true,
			},
		},
	}
}
