package subgraph_test

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/mocks"
	"github.com/nitk/memory-vault/internal/providers/subgraph"
)

const testIndexURL = "https://api.studio.thegraph.com/query/92923/memory/version/latest"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func TestClient_GetMemories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := subgraph.NewClient(subgraph.Config{URL: testIndexURL}, httpClient, adapter.NewJSON())

	httpClient.EXPECT().
		PostBytes(gomock.Any(), testIndexURL, "application/json", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ string, _ map[string]string, body io.Reader) ([]byte, error) {
			data, err := io.ReadAll(body)
			require.NoError(t, err)

			var req struct {
				OperationName string                 `json:"operationName"`
				Query         string                 `json:"query"`
				Variables     map[string]interface{} `json:"variables"`
			}
			require.NoError(t, adapter.NewJSON().Unmarshal(data, &req))
			assert.Equal(t, "GetMemories", req.OperationName)
			assert.Equal(t, subgraph.GetMemoriesQuery, req.Query)
			assert.Equal(t, "convocation", req.Variables["eventType"])
			assert.Equal(t, "1700000000", req.Variables["date"])

			return []byte(`{"data":{"memoryMinteds":[
				{"id":"0x01","ipfsHash":"bafy1","eventType":"Convocation","date":"1717200000","creator":"0xaa","tokenId":"2"},
				{"id":"0x02","ipfsHash":"bafy2","eventType":"convocation day","date":"bad","creator":"0xbb","tokenId":"3"},
				{"id":"0x03","ipfsHash":"bafy3","eventType":"Convocation","date":"1700000000","creator":"0xcc","tokenId":"1"}
			]}}`), nil
		})

	memories, err := client.GetMemories(context.Background(), "convocation", 1700000000)
	require.NoError(t, err)
	require.Len(t, memories, 2)
	assert.Equal(t, domain.MemorySummary{
		ID:        "0x01",
		TokenID:   "2",
		Creator:   "0xaa",
		IPFSHash:  "bafy1",
		EventType: "Convocation",
		Date:      1717200000,
	}, memories[0])
	assert.Equal(t, "0x03", memories[1].ID)
}

func TestClient_GetMemories_Errors(t *testing.T) {
	tests := []struct {
		name     string
		response []byte
		err      error
		contains string
	}{
		{
			name:     "transport error",
			err:      &adapter.HTTPStatusError{StatusCode: 502, Body: "bad gateway"},
			contains: "failed to query index",
		},
		{
			name:     "invalid json",
			response: []byte(`not json`),
			contains: "failed to decode index response",
		},
		{
			name:     "graphql errors",
			response: []byte(`{"errors":[{"message":"indexing_error"},{"message":"store error"}]}`),
			contains: "indexing_error; store error",
		},
		{
			name:     "no data",
			response: []byte(`{}`),
			contains: "no data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			httpClient := mocks.NewMockHTTPClient(ctrl)
			httpClient.EXPECT().
				PostBytes(gomock.Any(), testIndexURL, "application/json", gomock.Any(), gomock.Any()).
				Return(tt.response, tt.err)

			client := subgraph.NewClient(subgraph.Config{URL: testIndexURL}, httpClient, adapter.NewJSON())
			memories, err := client.GetMemories(context.Background(), "", 0)
			assert.ErrorContains(t, err, tt.contains)
			assert.Nil(t, memories)
		})
	}
}

func TestClient_GetMemories_EmptyResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		PostBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(`{"data":{"memoryMinteds":[]}}`), nil)

	memories, err := subgraph.NewClient(subgraph.Config{URL: testIndexURL}, httpClient, adapter.NewJSON()).
		GetMemories(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, memories)
	assert.NotNil(t, memories)
}

func TestClient_GetMemories_EncodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	jsonMock := mocks.NewMockJSON(ctrl)
	jsonMock.EXPECT().Marshal(gomock.Any()).Return(nil, errors.New("boom"))
	httpClient.EXPECT().PostBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := subgraph.NewClient(subgraph.Config{URL: testIndexURL}, httpClient, jsonMock).GetMemories(context.Background(), "", 0)
	assert.ErrorContains(t, err, "failed to encode query")
}
