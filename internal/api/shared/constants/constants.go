package constants

const (
	MAX_PAGE_SIZE            = 255
	DEFAULT_OFFSET           = uint64(0)
	DEFAULT_MEMORIES_LIMIT   = 100
	DEFAULT_TRANSFERS_LIMIT  = 50
	DEFAULT_MAX_UPLOAD_BYTES = int64(32 << 20)

	GRAPHQL_QUERY_CACHE_SIZE = 1000
	GRAPHQL_COMPLEXITY_LIMIT = 20000
)
