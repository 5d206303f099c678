// Package scoring defines the boundary between the application core and
// the external compatibility scoring engine. It abstracts the details of
// engine integration (an embedded Lua script or the Gemini API), allowing
// the orchestrator to score profile pairs without coupling to a specific
// engine.
package scoring
