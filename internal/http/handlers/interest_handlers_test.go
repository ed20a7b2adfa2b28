package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskledger/internal/interest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func interestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{}
	r := gin.New()
	r.POST("/interest/calculate", h.CalculateInterest)
	return r
}

func TestCalculateInterestEndpoint(t *testing.T) {
	r := interestRouter()

	body := `{"principal":1000,"monthly_rate":10,"total_months":3,"compounding_interval":1}`
	req := httptest.NewRequest(http.MethodPost, "/interest/calculate", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res interest.Result
	require.NoError(t, unmarshalBody(w, &res))
	assert.Equal(t, 1331.00, res.TotalAmount)
	assert.Len(t, res.Breakdown, 3)
	assert.Equal(t, "Months 1 to 1", res.Breakdown[0].Label)
}

func TestCalculateInterestRejectsBadInput(t *testing.T) {
	r := interestRouter()

	cases := []string{
		`{"principal":0,"monthly_rate":10,"total_months":3,"compounding_interval":1}`,
		`{"principal":1000,"monthly_rate":10,"total_months":3,"compounding_interval":0}`,
		`{"principal":"oops"}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/interest/calculate", strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
