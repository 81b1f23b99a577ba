package subgraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
)

// GetMemoriesQuery lists minted memories whose event type contains $eventType, dated on or after $date
const GetMemoriesQuery = `query GetMemories($eventType: String, $date: BigInt) {
  memoryMinteds(
    where: {
      eventType_contains_nocase: $eventType,
      date_gte: $date
    },
    orderBy: date,
    orderDirection: desc
  ) {
    id
    ipfsHash
    eventType
    date
    creator
    tokenId
  }
}`

// Config holds the hosted index settings
type Config struct {
	URL string
}

// IndexQuerier queries the index of minted memories
//
//go:generate mockgen -source=client.go -destination=../../mocks/index_querier.go -package=mocks -mock_names=IndexQuerier=MockIndexQuerier
type IndexQuerier interface {
	// GetMemories returns the memories matching the filters, newest date first
	GetMemories(ctx context.Context, eventType string, dateGTE int64) ([]domain.MemorySummary, error)
}

type client struct {
	config     Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// NewClient creates a client of the GraphQL index at cfg.URL
func NewClient(cfg Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON) IndexQuerier {
	return &client{
		config:     cfg,
		httpClient: httpClient,
		json:       jsonAdapter,
	}
}

type graphqlRequest struct {
	OperationName string                 `json:"operationName,omitempty"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type memoryNode struct {
	ID        string `json:"id"`
	IPFSHash  string `json:"ipfsHash"`
	EventType string `json:"eventType"`
	Date      string `json:"date"`
	Creator   string `json:"creator"`
	TokenID   string `json:"tokenId"`
}

type getMemoriesResponse struct {
	Data *struct {
		MemoryMinteds []memoryNode `json:"memoryMinteds"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// GetMemories returns the memories matching the filters, newest date first
func (c *client) GetMemories(ctx context.Context, eventType string, dateGTE int64) ([]domain.MemorySummary, error) {
	body, err := c.json.Marshal(graphqlRequest{
		OperationName: "GetMemories",
		Query:         GetMemoriesQuery,
		Variables: map[string]interface{}{
			"eventType": eventType,
			// BigInt variables are sent as strings
			"date": strconv.FormatInt(dateGTE, 10),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	data, err := c.httpClient.PostBytes(ctx, c.config.URL, "application/json", nil, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	var resp getMemoriesResponse
	if err := c.json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode index response: %w", err)
	}

	if len(resp.Errors) > 0 {
		messages := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("index query failed: %s", strings.Join(messages, "; "))
	}
	if resp.Data == nil {
		return nil, errors.New("index response has no data")
	}

	memories := make([]domain.MemorySummary, 0, len(resp.Data.MemoryMinteds))
	for _, node := range resp.Data.MemoryMinteds {
		date, err := strconv.ParseInt(node.Date, 10, 64)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping memory with invalid date", zap.String("id", node.ID), zap.String("date", node.Date))
			continue
		}

		memories = append(memories, domain.MemorySummary{
			ID:        node.ID,
			TokenID:   node.TokenID,
			Creator:   node.Creator,
			IPFSHash:  node.IPFSHash,
			EventType: node.EventType,
			Date:      date,
		})
	}

	return memories, nil
}
