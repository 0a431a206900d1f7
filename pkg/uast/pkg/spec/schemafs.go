// Package spec provides the embedded UAST schema specification.
package spec

import "embed"

// SchemaFile is the name of the embedded schema document.
const SchemaFile = "uast-schema.json"

// UASTSchemaFS contains the embedded UAST JSON schema.
//
//go:embed uast-schema.json
var UASTSchemaFS embed.FS

// Schema returns the embedded schema bytes.
func Schema() ([]byte, error) {
	return UASTSchemaFS.ReadFile(SchemaFile)
}
