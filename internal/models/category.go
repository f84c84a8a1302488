package models

// CategoryOption is a value/label pair used to populate a selection control
type CategoryOption struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Categories groups the selectable options served by the category endpoint
type Categories struct {
	Industries   []CategoryOption `yaml:"industries" json:"industries"`
	Roles        []CategoryOption `yaml:"roles" json:"roles"`
	Difficulties []CategoryOption `yaml:"difficulties" json:"difficulties"`
}
