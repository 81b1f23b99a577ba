package graphql

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var errNotAnObject = errors.New("expected an input object")

// MemoryMintedFilter is the where argument of memoryMinteds
type MemoryMintedFilter struct {
	EventTypeContainsNocase *string
	DateGte                 *BigInt
	Creator                 *string
}

type MemoryMintedOrderBy string

const (
	MemoryMintedOrderByDate MemoryMintedOrderBy = "date"
)

func (e MemoryMintedOrderBy) IsValid() bool {
	return e == MemoryMintedOrderByDate
}

func (e *MemoryMintedOrderBy) UnmarshalGQL(v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}

	*e = MemoryMintedOrderBy(str)
	if !e.IsValid() {
		return fmt.Errorf("%s is not a valid MemoryMinted_orderBy", str)
	}
	return nil
}

func (e MemoryMintedOrderBy) MarshalGQL(w io.Writer) {
	_, _ = io.WriteString(w, strconv.Quote(string(e)))
}

type OrderDirection string

const (
	OrderDirectionAsc  OrderDirection = "asc"
	OrderDirectionDesc OrderDirection = "desc"
)

func (e OrderDirection) IsValid() bool {
	switch e {
	case OrderDirectionAsc, OrderDirectionDesc:
		return true
	}
	return false
}

func (e *OrderDirection) UnmarshalGQL(v interface{}) error {
	str, ok := v.(string)
	if !ok {
		return fmt.Errorf("enums must be strings")
	}

	*e = OrderDirection(str)
	if !e.IsValid() {
		return fmt.Errorf("%s is not a valid OrderDirection", str)
	}
	return nil
}

func (e OrderDirection) MarshalGQL(w io.Writer) {
	_, _ = io.WriteString(w, strconv.Quote(string(e)))
}
