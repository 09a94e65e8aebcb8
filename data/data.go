package data

import _ "embed"

// DefaultCatalog is the course catalog served when CATALOG_PATH is not set
//
//go:embed catalog.yaml
var DefaultCatalog []byte
