package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestCreatePaginatedResponseDefaults(t *testing.T) {
	c := testContext(t, "/api/quotes")

	resp := CreatePaginatedResponse(c, []string{"a", "b"}, 45)

	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, DefaultPageSize, resp.PageSize)
	assert.Equal(t, int64(45), resp.TotalRows)
	assert.Equal(t, 3, resp.TotalPages) // 45 строк при размере страницы 20
}

func TestCreatePaginatedResponseExplicitParams(t *testing.T) {
	c := testContext(t, "/api/quotes?page=3&pageSize=10")

	resp := CreatePaginatedResponse(c, nil, 101)

	assert.Equal(t, 3, resp.CurrentPage)
	assert.Equal(t, 10, resp.PageSize)
	assert.Equal(t, 11, resp.TotalPages)
}

func TestCreatePaginatedResponseClampsPageSize(t *testing.T) {
	c := testContext(t, "/api/quotes?pageSize=1000")
	resp := CreatePaginatedResponse(c, nil, 10)
	assert.Equal(t, MaxPageSize, resp.PageSize)

	c = testContext(t, "/api/quotes?page=-5&pageSize=0")
	resp = CreatePaginatedResponse(c, nil, 10)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, DefaultPageSize, resp.PageSize)
}

func TestCreatePaginatedResponseEmpty(t *testing.T) {
	c := testContext(t, "/api/quotes")
	resp := CreatePaginatedResponse(c, nil, 0)
	assert.Equal(t, 0, resp.TotalPages)
}
