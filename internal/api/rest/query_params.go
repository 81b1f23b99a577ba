package rest

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/nitk/memory-vault/internal/api/shared/constants"
	"github.com/nitk/memory-vault/internal/domain"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Asc() bool {
	return o == OrderAsc
}

// ListMemoriesQueryParams holds query parameters for GET /memories
type ListMemoriesQueryParams struct {
	// Filters
	EventType string `form:"event_type"`
	// DateGTE is unix seconds or a YYYY-MM-DD date
	DateGTE string `form:"date_gte"`
	Creator string `form:"creator"`

	Order Order `form:"order,default=desc"`

	// Pagination
	Limit  int    `form:"limit,default=100"`
	Offset uint64 `form:"offset,default=0"`

	// Parsed from DateGTE
	DateGTEUnix int64 `form:"-"`
}

// ListTransfersQueryParams holds query parameters for GET /tokens/:token_id/transfers
type ListTransfersQueryParams struct {
	Limit  int    `form:"limit,default=50"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListMemoriesQuery parses query parameters for GET /memories
func ParseListMemoriesQuery(c *gin.Context) (*ListMemoriesQueryParams, error) {
	var params ListMemoriesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	params.EventType = strings.TrimSpace(params.EventType)
	params.Creator = strings.ToLower(strings.TrimSpace(params.Creator))

	if params.DateGTE != "" {
		date, err := parseDate(params.DateGTE)
		if err != nil {
			return nil, err
		}
		params.DateGTEUnix = date
	}

	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the query parameters
func (p *ListMemoriesQueryParams) Validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}
	if p.Order != OrderAsc && p.Order != OrderDesc {
		return fmt.Errorf("order must be %s or %s", OrderAsc, OrderDesc)
	}
	if p.Creator != "" && !common.IsHexAddress(p.Creator) {
		return fmt.Errorf("invalid creator address: %s", p.Creator)
	}
	return nil
}

// ParseListTransfersQuery parses query parameters for GET /tokens/:token_id/transfers
func ParseListTransfersQuery(c *gin.Context) (*ListTransfersQueryParams, error) {
	var params ListTransfersQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}
	if params.Limit < 1 {
		return nil, fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
	}

	return &params, nil
}

// validTokenID reports whether s is a uint256 in decimal notation
func validTokenID(s string) bool {
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return false
	}
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.BitLen() <= 256
}

// parseDate accepts unix seconds or a YYYY-MM-DD date at UTC midnight
func parseDate(value string) (int64, error) {
	if unix, err := strconv.ParseInt(value, 10, 64); err == nil {
		if unix < 0 {
			return 0, errors.New("date_gte must not be negative")
		}
		return unix, nil
	}

	unix, err := domain.ParseInputDate(value)
	if err != nil {
		return 0, fmt.Errorf("date_gte must be unix seconds or YYYY-MM-DD: %w", err)
	}
	return unix, nil
}
