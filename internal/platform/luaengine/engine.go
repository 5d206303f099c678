package luaengine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	lua "github.com/Shopify/go-lua"

	"github.com/phrazzld/amora-api/internal/config"
	"github.com/phrazzld/amora-api/internal/scoring"
)

const (
	// scriptName is the file the engine loads from the script directory.
	scriptName = "match.lua"

	// entrypoint is the global function the script must define. It
	// receives the two serialized profiles and returns a number.
	entrypoint = "match_profiles"
)

// Engine runs the matchmaking script on a single Lua state.
type Engine struct {
	// mu is the interpreter lock: the Lua state is global to the engine
	// and must never be entered by two goroutines at once.
	mu     sync.Mutex
	state  *lua.State
	script string
	logger *slog.Logger
}

// New loads the matchmaking script and returns a ready engine. It fails
// fast with a descriptive error when the script directory does not exist,
// so a misconfigured deployment dies at startup rather than on the first
// match request.
func New(cfg config.EngineConfig, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ScriptDir == "" {
		return nil, fmt.Errorf("%w: script directory cannot be empty", scoring.ErrInvalidConfig)
	}
	// A missing code location is both a configuration fault and an
	// unreachable engine; callers may match on either kind.
	if _, err := os.Stat(cfg.ScriptDir); err != nil {
		return nil, fmt.Errorf("%w: %w: script directory not found at %s: %v",
			scoring.ErrInvalidConfig, scoring.ErrUnavailable, cfg.ScriptDir, err)
	}

	script := filepath.Join(cfg.ScriptDir, scriptName)
	if _, err := os.Stat(script); err != nil {
		return nil, fmt.Errorf("%w: %w: %s not found in %s: %v",
			scoring.ErrInvalidConfig, scoring.ErrUnavailable, scriptName, cfg.ScriptDir, err)
	}

	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, script, ""); err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %v", scoring.ErrInvalidConfig, script, err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("%w: failed to run %s: %v", scoring.ErrInvalidConfig, script, err)
	}

	state.Global(entrypoint)
	defined := state.TypeOf(-1) == lua.TypeFunction
	state.Pop(1)
	if !defined {
		return nil, fmt.Errorf("%w: %s does not define function %s",
			scoring.ErrInvalidConfig, script, entrypoint)
	}

	logger.Info("lua scoring engine loaded", "script", script)

	return &Engine{
		state:  state,
		script: script,
		logger: logger,
	}, nil
}

// Score implements scoring.Scorer. The context is accepted for interface
// conformance only: the interpreter cannot be interrupted mid-call.
func (e *Engine) Score(_ context.Context, profileA, profileB json.RawMessage) (float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Global(entrypoint)
	if e.state.TypeOf(-1) != lua.TypeFunction {
		e.state.Pop(1)
		return 0, fmt.Errorf("%w: function %s vanished from %s",
			scoring.ErrUnavailable, entrypoint, e.script)
	}

	e.state.PushString(string(profileA))
	e.state.PushString(string(profileB))

	if err := e.state.ProtectedCall(2, 1, 0); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", scoring.ErrRuntime, entrypoint, err)
	}

	if e.state.TypeOf(-1) != lua.TypeNumber {
		e.state.Pop(1)
		return 0, fmt.Errorf("%w: %s returned a non-numeric value",
			scoring.ErrSerialization, entrypoint)
	}
	value, _ := e.state.ToNumber(-1)
	e.state.Pop(1)

	return float32(value), nil
}
