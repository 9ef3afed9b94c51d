package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meal-planner/internal/pkg/common"
)

// BodySizeLimit 限制請求體大小的中間件
func BodySizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			common.LogWarn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("max_size", maxSize),
				zap.String("client_ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			abortTooLarge(c, maxSize)
			return
		}

		// 未帶 Content-Length 的請求由 MaxBytesReader 把關
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)

		c.Next()
	}
}

func abortTooLarge(c *gin.Context, maxSize int64) {
	rejectedRequests.WithLabelValues("body_too_large").Inc()
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrorResponse{
		Code:    common.ErrCodeInvalidRequest,
		Message: "Request body too large",
		Details: fmt.Sprintf("max_size=%d", maxSize),
	})
}
