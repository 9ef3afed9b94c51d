package health

import (
	"net/http"
	"runtime"
	"time"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime"`
	LLM       *LLMStatus             `json:"llm,omitempty"`
}

// LLMStatus 文字生成後端狀態
type LLMStatus struct {
	Backend string `json:"backend"`
	Model   string `json:"model"`
}

// ReadyFunc 回傳服務尚未就緒的原因；nil 表示就緒
type ReadyFunc func() error

// Handler 健康檢查處理程序
type Handler struct {
	version string
	llm     *LLMStatus
	ready   ReadyFunc
	started time.Time
}

// NewHandler 創建健康檢查處理程序；llm 與 ready 可為 nil
func NewHandler(version string, llm *LLMStatus, ready ReadyFunc) *Handler {
	return &Handler{
		version: version,
		llm:     llm,
		ready:   ready,
		started: time.Now(),
	}
}

// Register 註冊路由
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		LLM: h.llm,
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			common.LogWarn("Service not ready", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, common.ErrServiceUnavailable.Response("", err.Error()))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
