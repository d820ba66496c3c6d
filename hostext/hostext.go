// Package hostext registers the host modules available to pyimport. Import it
// for side effects before creating any interpreter.
package hostext

import (
	// importing for side effects
	_ "github.com/zephyrtronium/lispy/hostext/codecs"
	_ "github.com/zephyrtronium/lispy/hostext/json"
	_ "github.com/zephyrtronium/lispy/hostext/math"
	_ "github.com/zephyrtronium/lispy/hostext/os"
	_ "github.com/zephyrtronium/lispy/hostext/platform"
	_ "github.com/zephyrtronium/lispy/hostext/time"
)
