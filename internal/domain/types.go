package domain

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonAmoy     Chain = "eip155:80002"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainPolygonAmoy
}

// ChainID returns the numeric EIP-155 chain ID of a CAIP-2 chain identifier
func (c Chain) ChainID() (*big.Int, error) {
	reference, ok := strings.CutPrefix(string(c), "eip155:")
	if !ok {
		return nil, fmt.Errorf("unsupported chain namespace: %s", c)
	}

	id, ok := new(big.Int).SetString(reference, 10)
	if !ok || id.Sign() <= 0 {
		return nil, fmt.Errorf("invalid chain reference: %s", c)
	}
	return id, nil
}

// EventKind identifies one of the vault contract events handled by the normalizer
type EventKind string

const (
	EventKindMemoryMinted         EventKind = "memory_minted"
	EventKindApproval             EventKind = "approval"
	EventKindApprovalForAll       EventKind = "approval_for_all"
	EventKindOwnershipTransferred EventKind = "ownership_transferred"
	EventKindTransfer             EventKind = "transfer"
)

// EventKinds lists every event kind in handler order
var EventKinds = []EventKind{
	EventKindMemoryMinted,
	EventKindApproval,
	EventKindApprovalForAll,
	EventKindOwnershipTransferred,
	EventKindTransfer,
}

// RecordID builds the unique key of an index record: the transaction hash followed by
// the log index encoded as a 4-byte little-endian i32, rendered as 0x-prefixed hex.
// This matches the key produced by the hosted indexer for the same log.
func RecordID(txHash common.Hash, logIndex uint) string {
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], uint32(logIndex)) //nolint:gosec,G115 // log indexes fit in an i32
	return txHash.Hex() + hex.EncodeToString(idx[:])
}

// IndexedEvent is the notification published after a log has been normalized and stored
type IndexedEvent struct {
	Chain          Chain     `json:"chain"`
	Kind           EventKind `json:"kind"`
	RecordID       string    `json:"record_id"`
	TokenID        *string   `json:"token_id,omitempty"`
	TxHash         string    `json:"tx_hash"`
	BlockNumber    uint64    `json:"block_number"`
	BlockTimestamp time.Time `json:"block_timestamp"`
}

// MemorySummary is the gallery view of a minted memory, as returned by the index query
type MemorySummary struct {
	ID        string `json:"id"`
	TokenID   string `json:"tokenId"`
	Creator   string `json:"creator"`
	IPFSHash  string `json:"ipfsHash"`
	EventType string `json:"eventType"`
	Date      int64  `json:"date"`
}

// FormattedDate renders the memory date as dd/mm/yyyy in UTC
func (m MemorySummary) FormattedDate() string {
	return FormatDate(m.Date)
}

// FormatDate renders unix seconds as dd/mm/yyyy in UTC
func FormatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(DATE_DISPLAY_LAYOUT)
}

// ParseInputDate parses a YYYY-MM-DD date as UTC midnight and returns unix seconds
func ParseInputDate(value string) (int64, error) {
	t, err := time.ParseInLocation(DATE_INPUT_LAYOUT, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t.Unix(), nil
}

// ParseTags splits a comma-separated tag list, trimming whitespace and dropping empty tags
func ParseTags(value string) []string {
	var tags []string
	for _, tag := range strings.Split(value, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// NormalizeAddress lowercases a hex address, the form used for indexed records
func NormalizeAddress(address common.Address) string {
	return strings.ToLower(address.Hex())
}
