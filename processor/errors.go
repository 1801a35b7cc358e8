package processor

import (
	"fmt"

	"github.com/MasterOfBinary/jobbatch/batch"
)

// errNilProcessor is returned by wrappers that have nothing to wrap.
var errNilProcessor = fmt.Errorf("%w: wrapped processor is nil", batch.ErrInvalidConfig)
