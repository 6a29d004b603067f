package definitions

import "embed"

//go:embed resources/*.json
var embeddedResources embed.FS

// Embedded returns a source over the definitions bundled with the module.
func Embedded(opts ...CodecOption) *FSSource {
	return NewFSSource(embeddedResources, "resources", opts...)
}
