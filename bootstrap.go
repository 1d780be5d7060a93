package forth

import _ "embed"

//go:embed core.fs
var coreSource string

// coreExtension holds the high level core word set, loaded into every VM
// unless WithoutCore is given.
var coreExtension = Extension{Name: "core.fs", Source: coreSource}
