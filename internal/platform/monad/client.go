package monad

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/phrazzld/amora-api/internal/config"
	"github.com/phrazzld/amora-api/internal/ledger"
)

// recordMatchSignature is the canonical ABI signature of the contract
// method this client invokes.
const recordMatchSignature = "recordMatch(address,address,uint256)"

// ErrInvalidAddress is returned when an account identifier is not a
// 20-byte hex address.
var ErrInvalidAddress = errors.New("invalid ledger address")

// Client is a minimal JSON-RPC ledger client. It relies on a node-managed
// account (eth_sendTransaction), which matches the local devnet setup this
// service is deployed against.
type Client struct {
	httpClient *http.Client
	rpcURL     string
	contract   string
	from       string
	selector   []byte
	logger     *slog.Logger
}

// NewClient validates the ledger configuration and returns a ready client.
// Address formats are checked eagerly so a misconfigured deployment fails
// at startup rather than on the first match.
func NewClient(cfg config.LedgerConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RPCURL == "" {
		return nil, errors.New("ledger RPC URL cannot be empty")
	}
	if _, err := parseAddress(cfg.ContractAddress); err != nil {
		return nil, fmt.Errorf("contract address: %w", err)
	}
	if _, err := parseAddress(cfg.FromAddress); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		rpcURL:     cfg.RPCURL,
		contract:   cfg.ContractAddress,
		from:       cfg.FromAddress,
		selector:   methodSelector(recordMatchSignature),
		logger:     logger,
	}, nil
}

// rpcRequest is the JSON-RPC 2.0 envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// txParams is the object form of an eth_sendTransaction parameter.
type txParams struct {
	From string `json:"from"`
	To   string `json:"to"`
	Data string `json:"data"`
}

// RecordMatch implements ledger.Recorder. It submits a single transaction
// and surfaces any failure as ledger.ErrUnavailable; the caller decides
// whether the outcome is worth retrying.
func (c *Client) RecordMatch(ctx context.Context, addressA, addressB string, scaledScore uint64) error {
	data, err := c.encodeRecordMatch(addressA, addressB, scaledScore)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrUnavailable, err)
	}

	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_sendTransaction",
		Params:  []any{txParams{From: c.from, To: c.contract, Data: data}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", ledger.ErrUnavailable, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close RPC response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: node returned HTTP %d", ledger.ErrUnavailable, resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("%w: decode response: %v", ledger.ErrUnavailable, err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("%w: rpc error %d: %s",
			ledger.ErrUnavailable, rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var txHash string
	if err := json.Unmarshal(rpcResp.Result, &txHash); err != nil || txHash == "" {
		return fmt.Errorf("%w: node returned no transaction hash", ledger.ErrUnavailable)
	}

	c.logger.Info("match recorded on ledger",
		"tx_hash", txHash,
		"scaled_score", scaledScore)
	return nil
}

// encodeRecordMatch builds the calldata: 4-byte selector followed by three
// 32-byte ABI words (two left-padded addresses and the scaled score).
func (c *Client) encodeRecordMatch(addressA, addressB string, scaledScore uint64) (string, error) {
	a, err := parseAddress(addressA)
	if err != nil {
		return "", err
	}
	b, err := parseAddress(addressB)
	if err != nil {
		return "", err
	}

	data := make([]byte, 0, 4+3*32)
	data = append(data, c.selector...)
	data = append(data, leftPad(a)...)
	data = append(data, leftPad(b)...)

	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], scaledScore)
	data = append(data, word[:]...)

	return "0x" + hex.EncodeToString(data), nil
}

// methodSelector returns the first four bytes of the Keccak-256 hash of
// the canonical signature.
func methodSelector(signature string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return h.Sum(nil)[:4]
}

// parseAddress decodes a 0x-prefixed 20-byte hex address.
func parseAddress(s string) ([]byte, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(s), "0x")
	raw, err := hex.DecodeString(trimmed)
	if err != nil || len(raw) != 20 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return raw, nil
}

// leftPad widens a 20-byte address to a 32-byte ABI word.
func leftPad(addr []byte) []byte {
	word := make([]byte, 32)
	copy(word[32-len(addr):], addr)
	return word
}
