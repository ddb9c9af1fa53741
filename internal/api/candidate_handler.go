package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hirePortal/internal/database"
	"hirePortal/internal/talent"
)

// CandidateHandler 暴露候选人查询、过滤与增删改查端点。
// 过滤与统计全部委托给 talent 包的纯函数，handler 只负责取快照与装配响应。
type CandidateHandler struct {
	store  database.CandidateStore
	logger *slog.Logger
}

// NewCandidateHandler 构造候选人处理器。
func NewCandidateHandler(store database.CandidateStore, logger *slog.Logger) *CandidateHandler {
	return &CandidateHandler{store: store, logger: logger}
}

// List 返回全部候选人，按 id 倒序。
func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to fetch candidates")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(candidates),
		"data":    candidates,
	})
}

// SkillIndex 返回全库技能分面索引。
func (h *CandidateHandler) SkillIndex(c *gin.Context) {
	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to fetch skills")
		return
	}

	index := talent.BuildSkillIndex(candidates)
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"data":            index,
		"totalSkills":     len(index),
		"totalCandidates": len(candidates),
	})
}

// BySkill 返回拥有指定技能的候选人及其概要统计。
func (h *CandidateHandler) BySkill(c *gin.Context) {
	skillName := c.Param("skillName")

	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to fetch candidates")
		return
	}

	matched := talent.Filter{Skill: skillName}.Apply(candidates)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"skill":          talent.DisplaySkill(candidates, skillName),
		"requestedSkill": skillName,
		"count":          len(matched),
		"data":           matched,
		"relatedSkills":  talent.RelatedSkills(matched, skillName),
		"summary": gin.H{
			"totalCandidates":   len(matched),
			"averageExperience": talent.AverageExperience(matched),
			"commonLocations":   talent.CommonLocations(matched),
			"visaStatus":        talent.VisaStatusDistribution(matched),
		},
	})
}

// SkillStats 返回指定技能的占比与分布统计。
func (h *CandidateHandler) SkillStats(c *gin.Context) {
	skillName := c.Param("skillName")

	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to fetch candidates")
		return
	}

	matched := talent.Filter{Skill: skillName}.Apply(candidates)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"skill": gin.H{
			"requested":  skillName,
			"normalized": talent.NormalizeSkill(skillName),
			"variations": talent.SkillVariations(candidates, skillName),
		},
		"statistics": gin.H{
			"totalCandidates":        len(candidates),
			"candidatesWithSkill":    len(matched),
			"percentage":             talent.SkillPercentage(len(matched), len(candidates)),
			"experienceDistribution": talent.ExperienceBuckets(matched),
			"averageExperience":      talent.AverageExperience(matched),
			"availableCount":         talent.AvailableCount(matched),
		},
	})
}

// SearchSkills 按技能子串搜索候选人。
func (h *CandidateHandler) SearchSkills(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		BadRequest(c, "query parameter q is required")
		return
	}

	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to search candidates")
		return
	}

	matched := talent.Filter{Query: query}.Apply(candidates)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"query":          query,
		"count":          len(matched),
		"data":           matched,
		"matchingSkills": talent.MatchingSkills(matched, query),
		"summary": gin.H{
			"totalCandidates":   len(matched),
			"averageExperience": talent.AverageExperience(matched),
			"commonLocations":   talent.CommonLocations(matched),
		},
	})
}

type filterBySkillsRequest struct {
	Skills    []string `json:"skills"`
	MatchType string   `json:"matchType"`
}

// FilterBySkills 按技能集合过滤候选人（ANY/ALL）。
func (h *CandidateHandler) FilterBySkills(c *gin.Context) {
	var req filterBySkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "skills array is required")
		return
	}
	if len(req.Skills) == 0 {
		BadRequest(c, "skills array is required")
		return
	}

	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to filter candidates")
		return
	}

	mode := talent.ParseMatchMode(req.MatchType)
	matched := talent.Filter{Skills: req.Skills, Mode: mode}.Apply(candidates)
	grouped, skillCounts := talent.GroupBySkill(matched, req.Skills)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"matchType":       string(mode),
		"requestedSkills": req.Skills,
		"totalCount":      len(matched),
		"data":            matched,
		"groupedBySkill":  grouped,
		"skillCounts":     skillCounts,
	})
}

// Search 组合过滤：技能 CSV（ANY）、经验区间、薪资区间、城市。
func (h *CandidateHandler) Search(c *gin.Context) {
	filter := talent.Filter{Location: c.Query("location")}

	if skills := c.Query("skills"); skills != "" {
		filter.Skills = talent.SplitSkills(skills)
		filter.Mode = talent.MatchAny
	}
	if v, ok := intQuery(c, "experienceMin"); ok {
		filter.ExperienceMin = &v
	}
	if v, ok := intQuery(c, "experienceMax"); ok {
		filter.ExperienceMax = &v
	}
	if v, ok := intQuery(c, "salaryMin"); ok {
		filter.SalaryMin = &v
	}
	if v, ok := intQuery(c, "salaryMax"); ok {
		filter.SalaryMax = &v
	}

	candidates, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
		Internal(c, "failed to search candidates")
		return
	}

	matched := filter.Apply(candidates)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(matched),
		"data":    matched,
	})
}

// Category 返回固定技能的快捷查询 handler。
func (h *CandidateHandler) Category(skill, label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidates, err := h.store.ListAll(c.Request.Context())
		if err != nil {
			loggerFromContext(c).Error("list candidates failed", slog.Any("error", err))
			Internal(c, "failed to fetch candidates")
			return
		}

		matched := talent.Filter{Skill: skill}.Apply(candidates)
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"category": label,
			"count":    len(matched),
			"data":     matched,
		})
	}
}

// Get 返回单个候选人。
func (h *CandidateHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	candidate, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Candidate not found")
			return
		}
		loggerFromContext(c).Error("get candidate failed", slog.Any("error", err))
		Internal(c, "failed to fetch candidate")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": candidate})
}

type createCandidateRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Mobile       string   `json:"mobile"`
	Location     string   `json:"location"`
	VisaStatus   string   `json:"visaStatus"`
	Passport     string   `json:"passport"`
	Experience   string   `json:"experience"`
	CurrentRole  string   `json:"currentRole"`
	Skills       []string `json:"skills"`
	Status       string   `json:"status"`
	NoticePeriod string   `json:"noticePeriod"`
	Salary       string   `json:"salary"`
	Education    string   `json:"education"`
	Bio          string   `json:"bio"`
}

// Create 新建候选人。name/email/mobile 必填，email 不可重复。
func (h *CandidateHandler) Create(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Mobile) == "" {
		BadRequest(c, "name, email and mobile are required")
		return
	}

	ctx := c.Request.Context()
	logger := loggerFromContext(c).With(slog.String("email", req.Email))

	exists, err := h.store.EmailExists(ctx, req.Email)
	if err != nil {
		logger.Error("email lookup failed", slog.Any("error", err))
		Internal(c, "failed to create candidate")
		return
	}
	if exists {
		BadRequest(c, "Email already exists")
		return
	}

	if req.VisaStatus == "" {
		req.VisaStatus = "Not Required"
	}
	if req.Status == "" {
		req.Status = "Available"
	}

	row := database.Candidate{
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Location:     req.Location,
		VisaStatus:   req.VisaStatus,
		Passport:     req.Passport,
		Experience:   req.Experience,
		CurrentRole:  req.CurrentRole,
		Skills:       datatypes.JSON(talent.EncodeSkills(req.Skills)),
		Status:       req.Status,
		NoticePeriod: req.NoticePeriod,
		Salary:       req.Salary,
		Education:    req.Education,
		Bio:          req.Bio,
	}

	candidate, err := h.store.Create(ctx, row)
	if err != nil {
		logger.Error("create candidate failed", slog.Any("error", err))
		Internal(c, "failed to create candidate")
		return
	}

	logger.Info("candidate created", slog.Int("candidate_id", candidate.ID))
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Candidate created successfully",
		"data":    candidate,
	})
}

// Update 合并更新候选人字段，id 与创建时间不可变。
func (h *CandidateHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		BadRequest(c, err.Error())
		return
	}

	candidate, err := h.store.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Candidate not found")
			return
		}
		loggerFromContext(c).Error("update candidate failed", slog.Any("error", err))
		Internal(c, "failed to update candidate")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Candidate updated successfully",
		"data":    candidate,
	})
}

// Delete 删除候选人。
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	existed, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		loggerFromContext(c).Error("delete candidate failed", slog.Any("error", err))
		Internal(c, "failed to delete candidate")
		return
	}
	if !existed {
		NotFound(c, "Candidate not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Candidate deleted successfully",
	})
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
