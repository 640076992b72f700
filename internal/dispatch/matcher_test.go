package dispatch

import (
	"testing"

	"food-dispatch/internal/model"

	"github.com/stretchr/testify/assert"
)

func testIndex() MenuIndex {
	restaurants := []model.Restaurant{
		{ID: 1, Name: "X"},
		{ID: 2, Name: "Y"},
	}
	entries := []model.MenuEntry{
		{RestaurantID: 1, ProductID: "P1", Availability: true},
		{RestaurantID: 1, ProductID: "P2", Availability: true},
		{RestaurantID: 2, ProductID: "P1", Availability: true},
	}
	return BuildMenuIndex(restaurants, entries)
}

func TestMatch_SupersetOnly(t *testing.T) {
	// Restaurant X offers {P1,P2}; Restaurant Y offers {P1};
	// an order for {P1,P2} matches X only.
	idx := testIndex()

	qualified := Match([]string{"P1", "P2"}, idx)

	assert.Equal(t, []int64{1}, qualified)
}

func TestMatch_BothQualify(t *testing.T) {
	idx := testIndex()

	qualified := Match([]string{"P1"}, idx)

	assert.Equal(t, []int64{1, 2}, qualified)
}

func TestMatch_NoneQualify(t *testing.T) {
	idx := testIndex()

	qualified := Match([]string{"P1", "P9"}, idx)

	assert.Empty(t, qualified)
}

func TestMatch_DuplicateProductIDs(t *testing.T) {
	// Quantity (and hence repeated product IDs) must not affect
	// eligibility, only product identity matters.
	idx := testIndex()

	qualified := Match([]string{"P1", "P1", "P1"}, idx)

	assert.Equal(t, []int64{1, 2}, qualified)
}

func TestMatch_EmptyProductSet(t *testing.T) {
	// An empty order must not make every restaurant qualify via a
	// vacuous subset test.
	idx := testIndex()

	qualified := Match(nil, idx)

	assert.Empty(t, qualified)
}

func TestMatch_EmptyIndex(t *testing.T) {
	qualified := Match([]string{"P1"}, MenuIndex{})

	assert.Empty(t, qualified)
}
