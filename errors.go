package arspawn

import (
	"errors"
	"fmt"
)

var (
	ErrNoCamera       = errors.New("no camera available")
	ErrNoAsset        = errors.New("no asset configured to spawn")
	ErrNoInstantiator = errors.New("no instantiator configured")
	ErrAlreadySpawned = errors.New("object already spawned")
)

type unknownNameError struct {
	kind string
	name string
}

func (e *unknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.kind, e.name)
}
