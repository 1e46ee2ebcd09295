package query

import (
	"testing"

	"github.com/webgrowth/facetfilter/pkg/types"
)

func TestInferMetaType(t *testing.T) {
	cases := []struct {
		name     string
		declared types.DataType
		values   []string
		want     types.MetaValueType
	}{
		{"integers", types.AutoData, []string{"1", "42", "7"}, types.NumericType},
		{"decimals", types.AutoData, []string{"1.5", "2"}, types.DecimalType},
		{"negative", types.AutoData, []string{"-3"}, types.NumericType},
		{"mixed text", types.AutoData, []string{"1", "abc"}, types.CharType},
		{"text", types.AutoData, []string{"red"}, types.CharType},
		{"empty", types.AutoData, nil, types.CharType},
		{"declared numeric wins", types.NumericData, []string{"abc"}, types.NumericType},
		{"declared decimal wins", types.DecimalData, []string{"1"}, types.DecimalType},
		{"declared text wins", types.TextData, []string{"1"}, types.CharType},
	}
	for _, c := range cases {
		if got := InferMetaType(c.declared, c.values); got != c.want {
			t.Errorf("%s: got %s, want %s", c.name, got, c.want)
		}
	}
}

func TestInferMetaTypeDeterministic(t *testing.T) {
	values := []string{"10", "20.5", "30"}
	first := InferMetaType(types.AutoData, values)
	for i := 0; i < 100; i++ {
		if got := InferMetaType(types.AutoData, values); got != first {
			t.Fatalf("iteration %d: got %s, want %s", i, got, first)
		}
	}
}
