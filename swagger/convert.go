package swagger

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
)

// ConvertV3 renders doc as an OpenAPI 3.0 document. The serialized
// Swagger 2.0 form is loaded with kin-openapi and converted with its
// openapi2conv package.
func ConvertV3(doc *Document) ([]byte, error) {
	data, err := Serialize(doc)
	if err != nil {
		return nil, err
	}
	return convertV3(data)
}

func convertV3(data []byte) ([]byte, error) {
	var v2 openapi2.T
	if err := json.Unmarshal(data, &v2); err != nil {
		return nil, fmt.Errorf("load swagger 2.0 document: %w", err)
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("convert to openapi 3: %w", err)
	}

	return json.Marshal(v3)
}
