package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/products?"+rawQuery, nil)
	return c
}

func TestProductFilterFromQuery(t *testing.T) {
	f, err := productFilterFromQuery(queryContext("category=home&sold=TRUE&is_sale=yes&min_price=10.5&search=lamp"))
	require.NoError(t, err)
	assert.Equal(t, "home", f.Category)
	assert.Equal(t, "lamp", f.Search)
	require.NotNil(t, f.Sold)
	assert.True(t, *f.Sold)
	require.NotNil(t, f.IsSale)
	assert.False(t, *f.IsSale, "only \"true\" means true")
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, "10.5", f.MinPrice.String())
	assert.Nil(t, f.MaxPrice)

	f, err = productFilterFromQuery(queryContext(""))
	require.NoError(t, err)
	assert.Nil(t, f.Sold)
	assert.Nil(t, f.IsSale)

	_, err = productFilterFromQuery(queryContext("max_price=cheap"))
	assert.EqualError(t, err, "invalid max_price")
}
