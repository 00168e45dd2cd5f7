package swagger

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// SerializeYAML renders doc as YAML with the same member order as
// Serialize.
func SerializeYAML(doc *Document) ([]byte, error) {
	data, err := Serialize(doc)
	if err != nil {
		return nil, err
	}
	return jsonToYAML(data)
}

// jsonToYAML re-encodes a JSON document as block style YAML. Decoding into
// a yaml.Node keeps mapping order; the flow and quoting styles inherited
// from JSON are cleared so the encoder picks the plain block forms and
// quotes only scalars that would otherwise change type.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}
