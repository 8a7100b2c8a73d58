package hotkey

import (
	"fmt"

	"github.com/knetic/govaluate"
)

// evalLevel evaluates a brightness expression such as "max / 2" or
// "max * 0.3" against the device maximum. The result is truncated and
// clamped to [0, max].
func evalLevel(expr string, maxLevel int) (int, error) {
	if expr == "" {
		return maxLevel / 2, nil
	}

	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("parse level %q: %w", expr, err)
	}

	result, err := expression.Evaluate(map[string]any{"max": float64(maxLevel)})
	if err != nil {
		return 0, fmt.Errorf("evaluate level %q: %w", expr, err)
	}

	f, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("level %q is not a number", expr)
	}

	level := int(f)
	if level < 0 {
		level = 0
	}
	if level > maxLevel {
		level = maxLevel
	}
	return level, nil
}
