package soia

import (
	"encoding/json"
	"math"
	"math/big"
	"strconv"
)

// jsonNumberToFloat coerces any JSON-ish numeric representation (float64,
// json.Number, string, or a Go numeric literal someone constructed the tree
// with directly) to a float64. Returns a TypeError if j isn't numeric.
func jsonNumberToFloat(j any) (float64, error) {
	switch v := j.(type) {
	case float64:
		return v, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, typeErrorf("soia: invalid JSON number %q", string(v))
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, typeErrorf("soia: invalid numeric string %q", v)
		}
		return f, nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	default:
		return 0, typeErrorf("soia: expected number, got %T", j)
	}
}

// isZeroJSON reports whether j is the JSON numeric literal 0, in any of the
// numeric Go shapes a tree can carry it: float64 (encoding/json's default),
// json.Number (UseNumber mode, as unmarshalJSONCode and the RPC layer use),
// or a native Go integer from a ToJSON-built tree. Several dense JSON
// encodings use a literal 0 as a placeholder for "the default value of this
// container/record kind", and must recognize it regardless
// of which numeric Go type the JSON layer handed back. Strings are not
// numbers here: "0" is a string value, not a defaulted slot.
func isZeroJSON(j any) bool {
	switch j.(type) {
	case nil, bool, string, []any, map[string]any:
		return false
	}
	f, err := jsonNumberToFloat(j)
	return err == nil && f == 0
}

// jsonNumberToBigInt coerces a JSON numeric value to an arbitrary-precision
// integer, the intermediate form the int64/uint64 codecs saturate from.
// Accepts integers, decimal strings, and (truncating) floats.
func jsonNumberToBigInt(j any) (*big.Int, error) {
	switch v := j.(type) {
	case json.Number:
		if i, ok := new(big.Int).SetString(string(v), 10); ok {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, typeErrorf("soia: invalid JSON number %q", string(v))
		}
		return floatToBigInt(f), nil
	case string:
		if i, ok := new(big.Int).SetString(v, 10); ok {
			return i, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, typeErrorf("soia: invalid numeric string %q", v)
		}
		return floatToBigInt(f), nil
	case float64:
		return floatToBigInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, typeErrorf("soia: expected number or numeric string, got %T", j)
	}
}

func floatToBigInt(f float64) *big.Int {
	if math.IsNaN(f) {
		return big.NewInt(0)
	}
	bf := new(big.Float).SetFloat64(f)
	i, _ := bf.Int(nil)
	return i
}

// float64Literal renders a float as its JSON representation, using the
// literal strings "NaN"/"Infinity"/"-Infinity" for non-finite values.
func float64Literal(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}

func parseFloatLiteral(j any) (float64, error) {
	if s, ok := j.(string); ok {
		switch s {
		case "NaN":
			return math.NaN(), nil
		case "Infinity":
			return math.Inf(1), nil
		case "-Infinity":
			return math.Inf(-1), nil
		}
	}
	return jsonNumberToFloat(j)
}
