// Package luaengine implements the scoring.Scorer interface with an
// embedded Lua interpreter. The engine's code lives outside the binary in
// a configured script directory, so matchmaking heuristics can change
// without a rebuild. The interpreter state is not safe for concurrent use
// and is guarded by a single lock; callers are expected to reach it
// through the scoring dispatcher.
package luaengine
