package expression

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Engine is a caching wrapper around expr-lang/expr
type Engine struct {
	programCache map[string]*vm.Program
	functions    map[string]func(params ...interface{}) (interface{}, error)
	mu           sync.RWMutex
}

// NewEngine creates a new expression engine
func NewEngine() *Engine {
	return &Engine{
		programCache: make(map[string]*vm.Program),
		functions:    make(map[string]func(params ...interface{}) (interface{}, error)),
	}
}

// Evaluate compiles (if needed) and runs an expression against the given environment
func (e *Engine) Evaluate(expression string, env map[string]interface{}) (interface{}, error) {
	program, err := e.getProgram(expression, env)
	if err != nil {
		return nil, err
	}

	return expr.Run(program, env)
}

// EvaluateBool runs an expression that must produce a boolean
func (e *Engine) EvaluateBool(expression string, env map[string]interface{}) (bool, error) {
	out, err := e.Evaluate(expression, env)
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %T, expected bool", expression, out)
	}
	return b, nil
}

// RegisterFunction registers a custom function
func (e *Engine) RegisterFunction(name string, fn func(params ...interface{}) (interface{}, error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.functions[name] = fn
	// Clear cache as available functions changed
	e.programCache = make(map[string]*vm.Program)
}

// Validate compiles an expression without running it
func (e *Engine) Validate(expression string, env map[string]interface{}) error {
	_, err := e.getProgram(expression, env)
	return err
}

func (e *Engine) getProgram(expression string, env map[string]interface{}) (*vm.Program, error) {
	e.mu.RLock()
	if prog, ok := e.programCache[expression]; ok {
		e.mu.RUnlock()
		return prog, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	// Double check
	if prog, ok := e.programCache[expression]; ok {
		return prog, nil
	}

	options := []expr.Option{
		expr.Env(env),
		expr.Function("TRIM", func(params ...interface{}) (interface{}, error) {
			s, err := stringArg("TRIM", params)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s), nil
		}),
		expr.Function("LEN", func(params ...interface{}) (interface{}, error) {
			s, err := stringArg("LEN", params)
			if err != nil {
				return nil, err
			}
			return len(s), nil
		}),
		expr.Function("ISBLANK", func(params ...interface{}) (interface{}, error) {
			s, err := stringArg("ISBLANK", params)
			if err != nil {
				return nil, err
			}
			return strings.TrimSpace(s) == "", nil
		}),
		expr.Function("LOWER", func(params ...interface{}) (interface{}, error) {
			s, err := stringArg("LOWER", params)
			if err != nil {
				return nil, err
			}
			return strings.ToLower(s), nil
		}),
		expr.Function("ROUND", func(params ...interface{}) (interface{}, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("ROUND requires 2 arguments")
			}
			val, err := toFloat(params[0])
			if err != nil {
				return nil, fmt.Errorf("ROUND arg 1 must be number")
			}
			prec, err := toInt(params[1])
			if err != nil {
				return nil, fmt.Errorf("ROUND arg 2 must be integer")
			}
			mult := math.Pow(10, float64(prec))
			return math.Round(val*mult) / mult, nil
		}),
		expr.Function("ISFINITE", func(params ...interface{}) (interface{}, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("ISFINITE requires 1 argument")
			}
			val, err := toFloat(params[0])
			if err != nil {
				return nil, fmt.Errorf("ISFINITE argument must be number")
			}
			return !math.IsNaN(val) && !math.IsInf(val, 0), nil
		}),
	}

	for name, fn := range e.functions {
		options = append(options, expr.Function(name, fn))
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}

	e.programCache[expression] = program
	return program, nil
}

func stringArg(name string, params []interface{}) (string, error) {
	if len(params) != 1 {
		return "", fmt.Errorf("%s requires 1 argument", name)
	}
	s, ok := params[0].(string)
	if !ok {
		return "", fmt.Errorf("%s argument must be string", name)
	}
	return s, nil
}

func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float32:
		return float64(val), nil
	}
	return 0, fmt.Errorf("cannot convert %T to float", v)
}

func toInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case float64:
		return int(val), nil
	case int64:
		return int(val), nil
	}
	return 0, fmt.Errorf("cannot convert %T to int", v)
}
