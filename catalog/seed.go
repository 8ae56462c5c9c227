package catalog

import _ "embed"

// seedCatalog is the built-in catalog used when no external data file is
// configured.
//
//go:embed seed/catalog.json
var seedCatalog []byte
