package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MemoryVaultABI is the ABI of the vault contract: an ERC721 with an owner and a mintMemory entry point
const MemoryVaultABI = `[
  {
    "type": "function",
    "name": "mintMemory",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "ipfsHash", "type": "string"},
      {"name": "eventType", "type": "string"},
      {"name": "date", "type": "uint256"},
      {"name": "tags", "type": "string[]"}
    ],
    "outputs": [
      {"name": "", "type": "uint256"}
    ]
  },
  {
    "type": "event",
    "name": "MemoryMinted",
    "anonymous": false,
    "inputs": [
      {"name": "tokenId", "type": "uint256", "indexed": true},
      {"name": "creator", "type": "address", "indexed": true},
      {"name": "ipfsHash", "type": "string", "indexed": false},
      {"name": "eventType", "type": "string", "indexed": false},
      {"name": "date", "type": "uint256", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "Approval",
    "anonymous": false,
    "inputs": [
      {"name": "owner", "type": "address", "indexed": true},
      {"name": "approved", "type": "address", "indexed": true},
      {"name": "tokenId", "type": "uint256", "indexed": true}
    ]
  },
  {
    "type": "event",
    "name": "ApprovalForAll",
    "anonymous": false,
    "inputs": [
      {"name": "owner", "type": "address", "indexed": true},
      {"name": "operator", "type": "address", "indexed": true},
      {"name": "approved", "type": "bool", "indexed": false}
    ]
  },
  {
    "type": "event",
    "name": "OwnershipTransferred",
    "anonymous": false,
    "inputs": [
      {"name": "previousOwner", "type": "address", "indexed": true},
      {"name": "newOwner", "type": "address", "indexed": true}
    ]
  },
  {
    "type": "event",
    "name": "Transfer",
    "anonymous": false,
    "inputs": [
      {"name": "from", "type": "address", "indexed": true},
      {"name": "to", "type": "address", "indexed": true},
      {"name": "tokenId", "type": "uint256", "indexed": true}
    ]
  }
]`

// Event names as declared in the ABI
const (
	EventMemoryMinted         = "MemoryMinted"
	EventApproval             = "Approval"
	EventApprovalForAll       = "ApprovalForAll"
	EventOwnershipTransferred = "OwnershipTransferred"
	EventTransfer             = "Transfer"
)

// MethodMintMemory is the name of the mint entry point
const MethodMintMemory = "mintMemory"

var (
	// ErrNoEventSignature is returned when a log has no topics
	ErrNoEventSignature = errors.New("no event signature")
	// ErrEventSignatureMismatch is returned when a log's first topic is not the expected event
	ErrEventSignatureMismatch = errors.New("event signature mismatch")
)

var parsedABI = mustParseABI()

func mustParseABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(MemoryVaultABI))
	if err != nil {
		panic(fmt.Sprintf("invalid memory vault ABI: %v", err))
	}
	return parsed
}

// ABI returns the parsed vault ABI
func ABI() abi.ABI {
	return parsedABI
}

// EventID returns the topic hash of a named vault event
func EventID(name string) common.Hash {
	return parsedABI.Events[name].ID
}

// EventTopics returns the topic hashes of every vault event, in handler order
func EventTopics() []common.Hash {
	return []common.Hash{
		EventID(EventMemoryMinted),
		EventID(EventApproval),
		EventID(EventApprovalForAll),
		EventID(EventOwnershipTransferred),
		EventID(EventTransfer),
	}
}

// EventName returns the name of the vault event a log belongs to
func EventName(log types.Log) (string, bool) {
	if len(log.Topics) == 0 {
		return "", false
	}
	event, err := parsedABI.EventByID(log.Topics[0])
	if err != nil {
		return "", false
	}
	return event.Name, true
}

// UnpackLog decodes a vault log into out, filling non-indexed fields from the data
// and indexed fields from the topics
func UnpackLog(out any, event string, log types.Log) error {
	if len(log.Topics) == 0 {
		return ErrNoEventSignature
	}
	ev, ok := parsedABI.Events[event]
	if !ok {
		return fmt.Errorf("unknown event %q", event)
	}
	if log.Topics[0] != ev.ID {
		return ErrEventSignatureMismatch
	}

	if len(log.Data) > 0 {
		if err := parsedABI.UnpackIntoInterface(out, event, log.Data); err != nil {
			return fmt.Errorf("failed to unpack %s data: %w", event, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopics(out, indexed, log.Topics[1:]); err != nil {
		return fmt.Errorf("failed to parse %s topics: %w", event, err)
	}

	return nil
}
