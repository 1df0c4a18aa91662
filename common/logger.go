package common

import (
	"lbmreport/status"
)

// MT: Constant after initialization; thread-safe
var Log status.Logger = status.Default()
