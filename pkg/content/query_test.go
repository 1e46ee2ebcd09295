package content

import (
	"testing"

	"github.com/webgrowth/facetfilter/pkg/types"
)

func TestExecuteRange(t *testing.T) {
	idx := testIndex()
	res := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		Status:      "publish",
		MetaQuery: []types.MetaConstraint{
			{Key: "price", Values: []string{"50", "200"}, Compare: types.Between, Type: types.NumericType},
		},
	})
	if res.Total != 2 {
		t.Fatalf("total: %d", res.Total)
	}
	for _, d := range res.Documents {
		if d.Id != 2 && d.Id != 3 {
			t.Errorf("unexpected match: %+v", d)
		}
	}
}

func TestExecuteLike(t *testing.T) {
	idx := testIndex()
	res := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		MetaQuery: []types.MetaConstraint{
			{Key: "color", Values: []string{"%blu%"}, Compare: types.Like, Type: types.CharType},
		},
	})
	if res.Total != 1 || res.Documents[0].Id != 1 {
		t.Errorf("like match: %+v", res)
	}
}

func TestLikeEscapedWildcards(t *testing.T) {
	if !likeMatch("50%", `50\%`) {
		t.Error("escaped percent should match literally")
	}
	if likeMatch("50x", `50\%`) {
		t.Error("escaped percent must not act as wildcard")
	}
	if !likeMatch("a_b", `a\_b`) {
		t.Error("escaped underscore should match literally")
	}
	if likeMatch("axb", `a\_b`) {
		t.Error("escaped underscore must not act as wildcard")
	}
	if !likeMatch("axb", "a_b") {
		t.Error("bare underscore is a single-char wildcard")
	}
}

func TestExecuteOrderingAndPaging(t *testing.T) {
	idx := testIndex()
	res := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		Status:      "publish",
		OrderBy:     "date",
		Order:       "DESC",
		PageSize:    2,
		Page:        1,
	})
	if res.Total != 3 || res.MaxPages != 2 {
		t.Fatalf("total=%d maxPages=%d", res.Total, res.MaxPages)
	}
	if res.Documents[0].Id != 3 || res.Documents[1].Id != 2 {
		t.Errorf("order: %d, %d", res.Documents[0].Id, res.Documents[1].Id)
	}

	page2 := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		Status:      "publish",
		OrderBy:     "date",
		Order:       "DESC",
		PageSize:    2,
		Page:        2,
	})
	if len(page2.Documents) != 1 || page2.Documents[0].Id != 1 {
		t.Errorf("page 2: %+v", page2.Documents)
	}
}

func TestExecuteAttributes(t *testing.T) {
	idx := testIndex()

	byAuthor := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		Status:      "publish",
		AuthorIn:    []string{"alice"},
	})
	if byAuthor.Total != 2 {
		t.Errorf("author filter: %+v", byAuthor)
	}

	byDate := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		DateQuery:   &types.DateWindow{After: "2024-03-02", Before: "2024-04-30", Inclusive: true},
	})
	if byDate.Total != 2 {
		t.Errorf("date window: %+v", byDate)
	}

	bySearch := idx.Execute(&types.ContentQuery{
		ContentType: "product",
		SearchText:  "hoodie",
	})
	if bySearch.Total != 2 {
		t.Errorf("search text: %+v", bySearch)
	}
}

func TestExecuteEmptyPageBeyondEnd(t *testing.T) {
	idx := testIndex()
	res := idx.Execute(&types.ContentQuery{ContentType: "product", PageSize: 10, Page: 5})
	if len(res.Documents) != 0 || res.Total != 4 {
		t.Errorf("beyond-end page: %+v", res)
	}
}
