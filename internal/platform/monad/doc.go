// Package monad implements the ledger.Recorder interface against an
// Ethereum-compatible JSON-RPC endpoint (a Monad node or a local devnet).
// It submits a recordMatch(address,address,uint256) contract transaction
// and interprets the node's response; it never retries.
package monad
