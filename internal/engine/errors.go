package engine

import "errors"

// ErrNoCompanion means the user has not adopted a companion yet. It is a
// valid lifecycle state, surfaced by the CLI as an adoption prompt rather
// than a failure.
var ErrNoCompanion = errors.New("no companion adopted yet (run `fp adopt`)")
