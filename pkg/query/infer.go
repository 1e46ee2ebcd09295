package query

import (
	"strconv"
	"strings"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// InferMetaType picks the comparison type for a meta constraint. An explicit
// data type on the facet always wins; "auto" inspects the filter values:
// all-numeric classifies as NUMERIC, or DECIMAL when any value carries a
// decimal point, anything else as CHAR.
func InferMetaType(declared types.DataType, values []string) types.MetaValueType {
	switch declared {
	case types.NumericData:
		return types.NumericType
	case types.DecimalData:
		return types.DecimalType
	case types.TextData:
		return types.CharType
	}

	if len(values) == 0 {
		return types.CharType
	}
	hasDecimal := false
	for _, v := range values {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return types.CharType
		}
		if strings.Contains(v, ".") {
			hasDecimal = true
		}
	}
	if hasDecimal {
		return types.DecimalType
	}
	return types.NumericType
}
