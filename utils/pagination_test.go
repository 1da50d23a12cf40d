package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jauntkid/TailorPro/utils"
)

func TestNewPageParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := utils.NewPageParams("", "")

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
	})

	t.Run("parses values", func(t *testing.T) {
		p := utils.NewPageParams("3", "25")

		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 25, p.Limit)
	})

	t.Run("rejects garbage and non-positive values", func(t *testing.T) {
		p := utils.NewPageParams("abc", "-5")

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
	})
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, utils.PageParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, utils.PageParams{Page: 5, Limit: 10}.Offset())
	assert.Equal(t, 50, utils.PageParams{Page: 3, Limit: 25}.Offset())
}

func TestLinks(t *testing.T) {
	t.Run("first page of many", func(t *testing.T) {
		links := utils.PageParams{Page: 1, Limit: 10}.Links(35)

		assert.Contains(t, links, "next")
		assert.NotContains(t, links, "prev")
		assert.Equal(t, map[string]int{"page": 2, "limit": 10}, links["next"])
	})

	t.Run("middle page has both", func(t *testing.T) {
		links := utils.PageParams{Page: 2, Limit: 10}.Links(35)

		assert.Equal(t, map[string]int{"page": 3, "limit": 10}, links["next"])
		assert.Equal(t, map[string]int{"page": 1, "limit": 10}, links["prev"])
	})

	t.Run("last page has only prev", func(t *testing.T) {
		links := utils.PageParams{Page: 4, Limit: 10}.Links(35)

		assert.NotContains(t, links, "next")
		assert.Contains(t, links, "prev")
	})

	t.Run("single page has neither", func(t *testing.T) {
		links := utils.PageParams{Page: 1, Limit: 10}.Links(7)

		assert.Empty(t, links)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.3, utils.Round2(0.1+0.2))
	assert.Equal(t, 10.56, utils.Round2(10.556))
	assert.Equal(t, -2.5, utils.Round2(-2.5))
	assert.Equal(t, 100.0, utils.Round2(100))
}
