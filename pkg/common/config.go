package common

type PrintOptions struct {
	Format            string `yaml:"option-format,omitempty"`
	Indent            int    `yaml:"option-indent,omitempty"`
	IncludeLocs       bool   `yaml:"option-include-locs,omitempty"`
	TrimValueOnOutput int    `yaml:"option-trim-value-on-output,omitempty"`
}
