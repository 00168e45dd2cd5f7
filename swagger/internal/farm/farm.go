// Package farm holds models that share names with models in package zoo.
package farm

type Pet struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
}
