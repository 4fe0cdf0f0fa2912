package domain

type NavItem struct {
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path" yaml:"path"`
	Icon  string `json:"icon" yaml:"icon"`
}

type NavSection struct {
	Title string    `json:"title" yaml:"title"`
	Items []NavItem `json:"items" yaml:"items"`
}

type Navigation struct {
	Role     string       `json:"role"`
	Sections []NavSection `json:"sections"`
}
