package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/tallow-lang/tallow/value"
)

// callBuiltin dispatches to a built-in function by name. ok is false
// if name does not name a builtin, in which case the caller falls
// back to a user-declared function of the same name.
func callBuiltin(c *Context, name string, args []value.Value) (value.Value, bool) {
	switch name {
	case "print":
		var sb strings.Builder
		for _, a := range args {
			sb.WriteString(a.String())
		}
		fmt.Fprintln(c.output, sb.String())
		return nil, true
	case "sin":
		if len(args) == 0 {
			return nil, true
		}
		if f, ok := args[0].(value.Float); ok {
			return value.Float(math.Sin(float64(f))), true
		}
		return nil, true
	default:
		return nil, false
	}
}
