// Package requests defines the definition documents used to seed and
// transfer treekv nodes, plus the conversions between definitions and
// live tree nodes.
package requests

// NodeDef is the JSON/YAML representation of a single node. Children are
// nested definitions; their paths may be given as bare names, which get
// qualified against the parent's path during conversion.
type NodeDef struct {
	Path         string     `json:"path" yaml:"path"`
	UUID         *string    `json:"uuid,omitempty" yaml:"uuid,omitempty"` // Optional definition id for linking and log correlation
	Owner        *string    `json:"owner,omitempty" yaml:"owner,omitempty"`
	Visibility   *string    `json:"visibility,omitempty" yaml:"visibility,omitempty"`     // Textual tag, e.g. "RED"; unknown values read as RED
	LastModified *string    `json:"last_modified,omitempty" yaml:"last_modified,omitempty"` // Unix milliseconds as string
	Values       []ValueDef `json:"values,omitempty" yaml:"values,omitempty"`
	Children     []NodeDef  `json:"children,omitempty" yaml:"children,omitempty"`
}

// ValueDef is the JSON/YAML representation of one key/value entry
type ValueDef struct {
	Key         string  `json:"key" yaml:"key"`
	Value       string  `json:"value" yaml:"value"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}
