package folio

import _ "embed"

// Version is the release version of folio.
//
//go:embed VERSION
var Version string
