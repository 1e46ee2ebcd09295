package content

import (
	"testing"
	"time"

	"github.com/webgrowth/facetfilter/pkg/types"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func testIndex() *Index {
	idx := NewIndex()
	idx.Upsert(&Document{
		Id: 1, ContentType: "product", Status: "publish", Title: "Blue Hoodie",
		Author: "alice", Date: day("2024-03-01"),
		Terms: map[string][]string{"category": {"clothing"}},
		Meta:  map[string][]string{"price": {"49.99"}, "color": {"blue"}},
	})
	idx.Upsert(&Document{
		Id: 2, ContentType: "product", Status: "publish", Title: "Red Hoodie",
		Author: "bob", Date: day("2024-03-05"),
		Terms: map[string][]string{"category": {"clothing"}},
		Meta:  map[string][]string{"price": {"59.99"}, "color": {"red"}},
	})
	idx.Upsert(&Document{
		Id: 3, ContentType: "product", Status: "publish", Title: "Desk Lamp",
		Author: "alice", Date: day("2024-04-10"),
		Terms: map[string][]string{"category": {"home"}},
		Meta:  map[string][]string{"price": {"120"}, "color": {"black"}},
	})
	idx.Upsert(&Document{
		Id: 4, ContentType: "product", Status: "draft", Title: "Prototype Chair",
		Author: "bob", Date: day("2024-05-01"),
		Terms: map[string][]string{"category": {"home"}},
		Meta:  map[string][]string{"price": {"300"}},
	})
	idx.Upsert(&Document{
		Id: 5, ContentType: "post", Status: "publish", Title: "Spring Sale Announced",
		Author: "alice", Date: day("2024-02-20"),
	})
	return idx
}

func TestUpsertReplacesLinks(t *testing.T) {
	idx := testIndex()
	idx.Upsert(&Document{
		Id: 1, ContentType: "product", Status: "publish", Title: "Blue Hoodie",
		Date:  day("2024-03-01"),
		Terms: map[string][]string{"category": {"home"}},
		Meta:  map[string][]string{"price": {"49.99"}},
	})
	res := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		TaxQuery: []types.TaxConstraint{
			{Taxonomy: "category", Terms: []string{"clothing"}, Operator: types.In},
		},
	})
	if res.Total != 1 || res.Documents[0].Id != 2 {
		t.Errorf("stale term link survived upsert: %+v", res)
	}
}

func TestDeleteUnlinks(t *testing.T) {
	idx := testIndex()
	idx.Delete(2)
	if idx.Len() != 4 {
		t.Errorf("len after delete: %d", idx.Len())
	}
	res := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		MetaQuery: []types.MetaConstraint{
			{Key: "color", Values: []string{"red"}, Compare: types.Equals, Type: types.CharType},
		},
	})
	if res.Total != 0 {
		t.Errorf("deleted document still matches: %+v", res)
	}
}

func TestChoices(t *testing.T) {
	idx := testIndex()

	terms := idx.TermChoices("category", nil)
	if len(terms) != 2 {
		t.Fatalf("terms: %+v", terms)
	}
	if terms[0].Value != "clothing" || terms[0].Count != 2 {
		t.Errorf("clothing choice: %+v", terms[0])
	}
	if terms[1].Label != "Home" {
		t.Errorf("label: %+v", terms[1])
	}

	prices := idx.MetaChoices("price", nil)
	if len(prices) != 4 || prices[0].Value != "49.99" || prices[3].Value != "300" {
		t.Errorf("numeric ordering broken: %+v", prices)
	}

	min, max, ok := idx.MetaRange("price")
	if !ok || min != 49.99 || max != 300 {
		t.Errorf("range: %v %v %v", min, max, ok)
	}
}

func TestScopedCounts(t *testing.T) {
	idx := testIndex()
	within := idx.MatchIds(&types.ContentQuery{
		ContentType: "product",
		Status:      "publish",
		TaxQuery: []types.TaxConstraint{
			{Taxonomy: "category", Terms: []string{"clothing"}, Operator: types.In},
		},
	})
	colors := idx.MetaChoices("color", within)
	for _, c := range colors {
		switch c.Value {
		case "blue", "red":
			if c.Count != 1 {
				t.Errorf("%s count: %d", c.Value, c.Count)
			}
		case "black":
			if c.Count != 0 {
				t.Errorf("out-of-scope value should count 0: %+v", c)
			}
		}
	}
}

func TestSortChoices(t *testing.T) {
	byCount := []Choice{
		{Value: "blue", Count: 3},
		{Value: "green", Count: 1},
		{Value: "red", Count: 2},
	}
	SortChoices(byCount, "count", "DESC")
	if byCount[0].Value != "blue" || byCount[1].Value != "red" || byCount[2].Value != "green" {
		t.Errorf("count DESC ordering: %+v", byCount)
	}

	byValue := []Choice{{Value: "a"}, {Value: "b"}, {Value: "c"}}
	SortChoices(byValue, "", "DESC")
	if byValue[0].Value != "c" || byValue[2].Value != "a" {
		t.Errorf("value DESC ordering: %+v", byValue)
	}

	untouched := []Choice{{Value: "a"}, {Value: "b"}}
	SortChoices(untouched, "", "")
	if untouched[0].Value != "a" {
		t.Errorf("default ordering changed: %+v", untouched)
	}
}
