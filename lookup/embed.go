package lookup

import "embed"

//go:embed profiles/*.yaml
var profileFiles embed.FS
