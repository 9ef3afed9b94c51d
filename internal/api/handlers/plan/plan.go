package plan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/planner"
	"meal-planner/internal/core/spoonacular"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service 處理器依賴的餐點計畫流程
type Service interface {
	ExtractCriteria(ctx context.Context, text string) (*extractor.Criteria, error)
	Plan(ctx context.Context, text string) (*planner.Plan, error)
	Render(ctx context.Context, plan *planner.Plan) (string, error)
}

// Formatter JSON 轉 Markdown
type Formatter interface {
	Format(ctx context.Context, v any) (string, error)
}

// PlanRequest 自然語言的餐點計畫需求
type PlanRequest struct {
	Text string `json:"text" binding:"required"` // 例如：「兩人份的三餐低碳水晚餐」
}

// CriteriaResponse 只包含擷取條件的響應
type CriteriaResponse struct {
	RequestID string              `json:"request_id"`
	Criteria  *extractor.Criteria `json:"criteria"`
}

// PlanResponse 完整計畫的響應
type PlanResponse struct {
	RequestID string `json:"request_id"`
	*planner.Plan
}

// FormatResponse Markdown 轉換結果
type FormatResponse struct {
	RequestID string `json:"request_id"`
	Markdown  string `json:"markdown"`
}

// Handler 餐點計畫處理程序
type Handler struct {
	service   Service
	formatter Formatter
	debug     bool
}

// NewHandler 創建處理程序；debug 模式下錯誤響應會附上原始錯誤
func NewHandler(service Service, formatter Formatter, debug bool) *Handler {
	return &Handler{
		service:   service,
		formatter: formatter,
		debug:     debug,
	}
}

// Register 註冊路由
func (h *Handler) Register(group *gin.RouterGroup) {
	group.POST("/plan", h.HandlePlan)
	group.POST("/plan/criteria", h.HandleCriteria)
	group.POST("/format", h.HandleFormat)
}

// HandleCriteria 只擷取餐點條件
func (h *Handler) HandleCriteria(c *gin.Context) {
	requestID := requestIDFrom(c)

	text, ok := h.bindText(c, requestID)
	if !ok {
		return
	}

	criteria, err := h.service.ExtractCriteria(c.Request.Context(), text)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	common.LogInfo("條件擷取完成",
		zap.String("request_id", requestID),
		zap.Int("meal_count", criteria.MealCount),
	)
	c.JSON(http.StatusOK, CriteriaResponse{RequestID: requestID, Criteria: criteria})
}

// HandlePlan 執行完整流程；?format=markdown 時附上 Markdown
func (h *Handler) HandlePlan(c *gin.Context) {
	requestID := requestIDFrom(c)

	text, ok := h.bindText(c, requestID)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	result, err := h.service.Plan(ctx, text)
	if err != nil {
		h.respondError(c, requestID, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "markdown") {
		md, err := h.service.Render(ctx, result)
		if err != nil {
			h.respondError(c, requestID, err)
			return
		}
		result.Markdown = md
	}

	common.LogInfo("餐點計畫請求完成",
		zap.String("request_id", requestID),
		zap.Int("meals", len(result.Meals)),
		zap.Int("failed", result.Failed()),
	)
	c.JSON(http.StatusOK, PlanResponse{RequestID: requestID, Plan: result})
}

// HandleFormat 將任意 JSON 轉為 Markdown
func (h *Handler) HandleFormat(c *gin.Context) {
	requestID := requestIDFrom(c)

	body, err := c.GetRawData()
	if err != nil || !json.Valid(body) {
		common.LogWarn("請求格式無效", zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response("", "body must be a JSON value"))
		return
	}

	md, err := h.formatter.Format(c.Request.Context(), json.RawMessage(body))
	if err != nil {
		h.respondError(c, requestID, &planner.StageError{Stage: planner.StageFormat, Err: err})
		return
	}

	c.JSON(http.StatusOK, FormatResponse{RequestID: requestID, Markdown: md})
}

func (h *Handler) bindText(c *gin.Context, requestID string) (string, bool) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response("", h.details(err)))
		return "", false
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response("", "text is empty"))
		return "", false
	}
	return text, true
}

// respondError 將流程錯誤轉為 API 錯誤響應
func (h *Handler) respondError(c *gin.Context, requestID string, err error) {
	if errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
		common.LogError("Request timeout", zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response("", ""))
		return
	}
	if errors.Is(err, extractor.ErrEmptyText) {
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response(string(planner.StageExtraction), "text is empty"))
		return
	}
	if errors.Is(err, planner.ErrTooManyMeals) {
		common.LogWarn("餐點數超過上限", zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusBadRequest, common.ErrInvalidRequest.Response(string(planner.StageSynthesis), "meal_count exceeds limit"))
		return
	}

	var stageErr *planner.StageError
	if !errors.As(err, &stageErr) {
		common.LogError("未預期的錯誤", zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, common.ErrInternalError.Response("", h.details(err)))
		return
	}

	stage := string(stageErr.Stage)
	details := h.details(stageErr.Err)

	var target *common.CustomError
	switch stageErr.Stage {
	case planner.StageExtraction:
		target = common.ErrExtractionFailed
		var exErr *extractor.ExtractionError
		if errors.As(err, &exErr) && !h.debug {
			details = "field=" + exErr.Field
		}
	case planner.StageSearch:
		target = common.ErrSearchAPI
		var decodeErr *spoonacular.DecodeError
		if errors.As(err, &decodeErr) {
			target = common.ErrSearchDecode
		}
	case planner.StageFormat:
		target = common.ErrFormatFailed
	default:
		target = common.ErrSynthesisFailed
	}

	resp := target.Response(stage, details)
	if stageErr.Stage == planner.StageSearch {
		resp.Meals = h.mealFailures(stageErr.Err)
	}

	common.LogError("餐點計畫請求失敗",
		zap.String("request_id", requestID),
		zap.String("stage", stage),
		zap.String("code", target.Code),
		zap.Int("failed_meals", len(resp.Meals)),
		zap.Error(err),
	)
	c.JSON(target.Status, resp)
}

// mealFailures 列出每個失敗餐點的索引與上游狀態碼
func (h *Handler) mealFailures(err error) []common.MealFailure {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	var out []common.MealFailure
	for _, e := range errs {
		var mealErr *planner.MealError
		if !errors.As(e, &mealErr) {
			continue
		}
		f := common.MealFailure{Index: mealErr.Index, Error: h.details(mealErr.Err)}
		if status, ok := spoonacular.IsAPIError(mealErr.Err); ok {
			f.Status = status
		}
		out = append(out, f)
	}
	return out
}

func (h *Handler) details(err error) string {
	if !h.debug || err == nil {
		return ""
	}
	return err.Error()
}

func requestIDFrom(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = c.Writer.Header().Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}
	return requestID
}
