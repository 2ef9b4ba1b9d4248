package heart

import (
	"fmt"
	"math"
	"runtime"
)

const (
	pi  = math.Pi
	tau = 2 * pi
)

// errMsg returns an error with the calling function name and line number.
func errMsg(msg string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("?: %s", msg)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%s line %d: %s", fn.Name(), line, msg)
}
