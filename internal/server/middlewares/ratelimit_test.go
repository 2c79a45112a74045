package middlewares_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tupyy/async-services/internal/server/middlewares"
)

var _ = Describe("RateLimit", func() {
	It("should let the burst through and reject the rest", func() {
		router := gin.New()
		router.Use(middlewares.RateLimit(0.01, 3))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		codes := make([]int, 0, 5)
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, w.Code)
		}

		Expect(codes).To(Equal([]int{
			http.StatusNoContent,
			http.StatusNoContent,
			http.StatusNoContent,
			http.StatusTooManyRequests,
			http.StatusTooManyRequests,
		}))
	})
})
