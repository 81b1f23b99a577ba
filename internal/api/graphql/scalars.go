package graphql

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

// BigInt is an arbitrary precision integer, written as a decimal string
// so clients do not lose precision on token IDs and timestamps
type BigInt string

// BigIntFromUint64 converts a uint64 to a BigInt
func BigIntFromUint64(n uint64) BigInt {
	return BigInt(strconv.FormatUint(n, 10))
}

// BigIntFromInt64 converts an int64 to a BigInt
func BigIntFromInt64(n int64) BigInt {
	return BigInt(strconv.FormatInt(n, 10))
}

// MarshalGQL implements graphql.Marshaler for BigInt
func (b BigInt) MarshalGQL(w io.Writer) {
	_, _ = io.WriteString(w, strconv.Quote(string(b)))
}

// UnmarshalGQL implements graphql.Unmarshaler for BigInt. It accepts
// integer literals, JSON numbers and decimal strings.
func (b *BigInt) UnmarshalGQL(v interface{}) error {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return fmt.Errorf("cannot unmarshal %T to BigInt", v)
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("cannot parse %q as BigInt", s)
	}

	*b = BigInt(n.String())
	return nil
}

// Int64 returns the value as an int64
func (b BigInt) Int64() (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// Negative reports whether the value is below zero
func (b BigInt) Negative() bool {
	return len(b) > 0 && b[0] == '-'
}
