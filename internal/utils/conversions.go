package utils

import (
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeResponse serializes a response map into a byte slice
func EncodeResponse(response map[string]interface{}) ([]byte, error) {
	return msgpack.Marshal(response)
}

// DecodeRequest deserializes a byte slice into a request map
func DecodeRequest(data []byte) (map[string]interface{}, error) {
	var request map[string]interface{}
	err := msgpack.Unmarshal(data, &request)
	return request, err
}

// NewRequestDecoder returns a decoder reading a stream of request maps.
// Integers decode as int64 or uint64 whatever their wire width.
func NewRequestDecoder(r io.Reader) *msgpack.Decoder {
	dec := msgpack.NewDecoder(r)
	dec.UseLooseInterfaceDecoding(true)
	return dec
}

// ToInt converts a request field to an int64. Clients may send numbers of
// any msgpack width or decimal strings.
func ToInt(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > 1<<63-1 {
			return 0, fmt.Errorf("integer %d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}
