package pagination

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	t.Run("TwentyThreeItemsPageSizeNine", func(t *testing.T) {
		wantSizes := []int{9, 9, 5}
		wantNext := []bool{true, true, false}
		wantPrev := []bool{false, true, true}

		for i := range wantSizes {
			page, err := Paginate(items, 9, i+1)
			require.NoError(t, err)
			assert.Len(t, page.Items, wantSizes[i], "page %d", i+1)
			assert.Equal(t, wantNext[i], page.HasNext, "page %d", i+1)
			assert.Equal(t, wantPrev[i], page.HasPrevious, "page %d", i+1)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 23, page.TotalItems)
		}
	})

	t.Run("PagePastEnd", func(t *testing.T) {
		page, err := Paginate(items, 9, 4)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrevious)
	})

	t.Run("EmptySnapshot", func(t *testing.T) {
		page, err := Paginate([]int{}, 9, 1)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNext)
		assert.False(t, page.HasPrevious)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("HugePageOrSize", func(t *testing.T) {
		cases := []struct {
			name     string
			size     int
			page     int
			wantLen  int
			wantNext bool
		}{
			{"huge page", 9, 1024819115206086202, 0, false},
			{"max page", 9, math.MaxInt, 0, false},
			{"max size first page", math.MaxInt, 1, 23, false},
			{"max size second page", math.MaxInt, 2, 0, false},
			{"max both", math.MaxInt, math.MaxInt, 0, false},
		}
		for _, tc := range cases {
			page, err := Paginate(items, tc.size, tc.page)
			require.NoError(t, err, tc.name)
			assert.Len(t, page.Items, tc.wantLen, tc.name)
			assert.Equal(t, tc.wantNext, page.HasNext, tc.name)
			assert.Equal(t, 23, page.TotalItems, tc.name)
		}
	})

	t.Run("InvalidArguments", func(t *testing.T) {
		_, err := Paginate(items, 0, 1)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidPage)
		_, err = Paginate(items, 9, 0)
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidPage)
	})

	t.Run("ResultDoesNotAliasInput", func(t *testing.T) {
		page, err := Paginate(items, 9, 1)
		require.NoError(t, err)
		page.Items[0] = 100
		assert.Equal(t, 0, items[0])
	})
}

func TestPaginate_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 200).Draw(t, "total")
		size := rapid.IntRange(1, 50).Draw(t, "size")
		items := make([]int, total)
		for i := range items {
			items[i] = i
		}

		var seen []int
		for p := 1; ; p++ {
			page, err := Paginate(items, size, p)
			if err != nil {
				t.Fatalf("page %d: %v", p, err)
			}
			if len(page.Items) > size {
				t.Fatalf("page %d has %d items, size %d", p, len(page.Items), size)
			}
			if page.HasPrevious != (p > 1) {
				t.Fatalf("page %d: HasPrevious=%v", p, page.HasPrevious)
			}
			seen = append(seen, page.Items...)
			if !page.HasNext {
				break
			}
		}

		if len(seen) != total {
			t.Fatalf("pages covered %d items, want %d", len(seen), total)
		}
		for i, v := range seen {
			if v != i {
				t.Fatalf("item %d out of order: got %d", i, v)
			}
		}
	})
}

func TestPaginate_AnyPageIsSafe(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.IntRange(0, 50).Draw(t, "total")
		size := rapid.IntRange(1, math.MaxInt).Draw(t, "size")
		p := rapid.IntRange(1, math.MaxInt).Draw(t, "page")
		items := make([]int, total)

		page, err := Paginate(items, size, p)
		if err != nil {
			t.Fatalf("Paginate(%d, %d, %d): %v", total, size, p, err)
		}
		if len(page.Items) > total || len(page.Items) > size {
			t.Fatalf("page %d of size %d returned %d of %d items", p, size, len(page.Items), total)
		}
		if page.TotalPages < 0 || page.TotalPages > total {
			t.Fatalf("TotalPages=%d for %d items", page.TotalPages, total)
		}
		if p > page.TotalPages && (len(page.Items) != 0 || page.HasNext) {
			t.Fatalf("page %d past the end returned %d items, HasNext=%v", p, len(page.Items), page.HasNext)
		}
	})
}

func TestSortListings(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	listings := []models.Listing{
		{ID: "c", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "b", CreatedAt: base},
		{ID: "a", CreatedAt: base},
	}

	sorted := SortListings(listings)

	var ids []string
	for _, l := range sorted {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "c", listings[0].ID, "input must keep its order")
}

func ExamplePaginate() {
	page, _ := Paginate([]string{"a", "b", "c"}, 2, 2)
	fmt.Println(page.Items, page.HasNext, page.HasPrevious)
	// Output: [c] false true
}
