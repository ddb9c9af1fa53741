package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"hirePortal/internal/api/middleware"
	"hirePortal/internal/database"
	"hirePortal/internal/export"
	"hirePortal/internal/talent"
	"hirePortal/internal/worker"
)

// DemandHandler 暴露招聘需求的增删改查与导出端点。
// 变更通过 Redis Pub/Sub 广播，供 WebSocket 层转发。
type DemandHandler struct {
	store       database.DemandStore
	redisClient *redis.Client
	logger      *slog.Logger
	now         func() time.Time
}

// NewDemandHandler 构造需求处理器。
func NewDemandHandler(store database.DemandStore, redisClient *redis.Client, logger *slog.Logger) *DemandHandler {
	return &DemandHandler{
		store:       store,
		redisClient: redisClient,
		logger:      logger,
		now:         time.Now,
	}
}

// List 返回全部需求，按创建日期倒序，附带计算出的 ageing。
func (h *DemandHandler) List(c *gin.Context) {
	demands, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list demands failed", slog.Any("error", err))
		Internal(c, "failed to fetch demands")
		return
	}

	now := h.now()
	for i := range demands {
		demands[i].AgeingWeeks = talent.AgeingWeeks(demands[i].CreatedDate, now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(demands),
		"data":    demands,
	})
}

// Get 返回单个需求。
func (h *DemandHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	demand, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Demand not found")
			return
		}
		loggerFromContext(c).Error("get demand failed", slog.Any("error", err))
		Internal(c, "failed to fetch demand")
		return
	}

	demand.AgeingWeeks = talent.AgeingWeeks(demand.CreatedDate, h.now())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": demand})
}

type createDemandRequest struct {
	ClientName     string   `json:"clientName"`
	Country        string   `json:"country"`
	Location       string   `json:"location"`
	CreatedDate    string   `json:"createdDate"`
	ExpFrom        int      `json:"expFrom"`
	ExpTo          int      `json:"expTo"`
	Interviewer1   string   `json:"interviewer1"`
	Interviewer2   string   `json:"interviewer2"`
	JobDescription string   `json:"jobDescription"`
	JobPriority    string   `json:"jobPriority"`
	PrimarySkill   []string `json:"primarySkill"`
	SecondarySkill []string `json:"secondarySkill"`
	RecruiterPOC   string   `json:"recruiterPOC"`
	Status         string   `json:"status"`
}

// Create 新建需求。createdDate 缺省为当天，优先级缺省 Medium，状态缺省 Active。
func (h *DemandHandler) Create(c *gin.Context) {
	var req createDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.ClientName == "" {
		BadRequest(c, "clientName is required")
		return
	}

	if req.CreatedDate == "" {
		req.CreatedDate = h.now().Format("2006-01-02")
	}
	if req.JobPriority == "" {
		req.JobPriority = "Medium"
	}
	if req.Status == "" {
		req.Status = "Active"
	}

	row := database.Demand{
		ClientName:     req.ClientName,
		Country:        req.Country,
		Location:       req.Location,
		CreatedDate:    req.CreatedDate,
		ExpFrom:        req.ExpFrom,
		ExpTo:          req.ExpTo,
		Interviewer1:   req.Interviewer1,
		Interviewer2:   req.Interviewer2,
		JobDescription: req.JobDescription,
		JobPriority:    req.JobPriority,
		PrimarySkill:   datatypes.JSON(talent.EncodeSkills(req.PrimarySkill)),
		SecondarySkill: datatypes.JSON(talent.EncodeSkills(req.SecondarySkill)),
		RecruiterPOC:   req.RecruiterPOC,
		Status:         req.Status,
	}

	demand, err := h.store.Create(c.Request.Context(), row)
	if err != nil {
		loggerFromContext(c).Error("create demand failed", slog.Any("error", err))
		Internal(c, "failed to create demand")
		return
	}

	demand.AgeingWeeks = talent.AgeingWeeks(demand.CreatedDate, h.now())
	h.publishEvent(c, "created", demand)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Demand created successfully",
		"data":    demand,
	})
}

// Update 合并更新需求字段。
func (h *DemandHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err.Error())
		return
	}

	demand, err := h.store.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Demand not found")
			return
		}
		loggerFromContext(c).Error("update demand failed", slog.Any("error", err))
		Internal(c, "failed to update demand")
		return
	}

	demand.AgeingWeeks = talent.AgeingWeeks(demand.CreatedDate, h.now())
	h.publishEvent(c, "updated", demand)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Demand updated successfully",
		"data":    demand,
	})
}

// Delete 删除需求。
func (h *DemandHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	existed, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		loggerFromContext(c).Error("delete demand failed", slog.Any("error", err))
		Internal(c, "failed to delete demand")
		return
	}
	if !existed {
		NotFound(c, "Demand not found")
		return
	}

	h.publishEvent(c, "deleted", talent.Demand{ID: id})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Demand deleted successfully",
	})
}

// ExportCSV 按报表格式导出全部需求。
func (h *DemandHandler) ExportCSV(c *gin.Context) {
	demands, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list demands failed", slog.Any("error", err))
		Internal(c, "failed to export demands")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="demands.csv"`)
	if err := export.WriteDemandsCSV(c.Writer, demands, h.now()); err != nil {
		loggerFromContext(c).Error("write demands csv failed", slog.Any("error", err))
	}
}

// publishEvent 广播需求事件。广播失败只记日志，不影响请求结果。
func (h *DemandHandler) publishEvent(c *gin.Context, event string, demand talent.Demand) {
	if h.redisClient == nil {
		return
	}
	message := worker.DemandEventMessage{
		Event:         event,
		DemandID:      demand.ID,
		ClientName:    demand.ClientName,
		AgeingWeeks:   demand.AgeingWeeks,
		CorrelationID: middleware.GetCorrelationID(c),
	}
	if err := worker.PublishDemandEvent(c.Request.Context(), h.redisClient, message); err != nil {
		loggerFromContext(c).Error("publish demand event failed",
			slog.String("event", event),
			slog.Any("error", err),
		)
	}
}
