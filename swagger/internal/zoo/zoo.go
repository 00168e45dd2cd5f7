// Package zoo holds models that share names with models in package farm.
package zoo

type Pet struct {
	Name    string `json:"name"`
	Species string `json:"species"`
}
