package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hirePortal/internal/database"
	"hirePortal/internal/metrics"
	"hirePortal/internal/talent"
	"hirePortal/internal/tasks"
)

// AgeingScanHandler 消费需求超龄巡检任务：重算所有需求的 ageing，
// 统计超龄未关闭的数量，刷新指标并向事件频道广播摘要。
type AgeingScanHandler struct {
	demands     database.DemandStore
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewAgeingScanHandler 创建任务处理器。
func NewAgeingScanHandler(demands database.DemandStore, redisClient *redis.Client, logger *slog.Logger) *AgeingScanHandler {
	return &AgeingScanHandler{
		demands:     demands,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *AgeingScanHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload tasks.DemandAgeingScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		h.logger.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log := h.logger.With(slog.String("correlation_id", payload.CorrelationID))
	log.Info("starting demand ageing scan",
		slog.Int("stale_after_weeks", payload.StaleAfterWeeks),
	)

	demands, err := h.demands.ListAll(ctx)
	if err != nil {
		log.Error("list demands failed", slog.Any("error", err))
		return err
	}

	now := time.Now()
	stale := 0
	for _, demand := range demands {
		weeks := talent.AgeingWeeks(demand.CreatedDate, now)
		log.Debug("demand ageing",
			slog.Int("demand_id", demand.ID),
			slog.Int("ageing_weeks", weeks),
			slog.String("status", demand.Status),
		)
		if weeks >= payload.StaleAfterWeeks && demand.Status == "Active" {
			stale++
			level := slog.LevelInfo
			if demand.JobPriority == "High" {
				level = slog.LevelWarn
			}
			log.Log(ctx, level, "demand exceeded ageing threshold",
				slog.Int("demand_id", demand.ID),
				slog.String("client", demand.ClientName),
				slog.String("priority", demand.JobPriority),
				slog.Int("ageing_weeks", weeks),
			)
		}
	}

	metrics.StaleDemands.Set(float64(stale))

	event := DemandEventMessage{
		Event:         "ageing_scan",
		StaleCount:    stale,
		CorrelationID: payload.CorrelationID,
	}
	if err := PublishDemandEvent(ctx, h.redisClient, event); err != nil {
		// 广播失败不应导致任务重试，巡检本身已完成。
		log.Error("publish ageing scan event failed", slog.Any("error", err))
	}

	log.Info("demand ageing scan finished",
		slog.Int("total", len(demands)),
		slog.Int("stale", stale),
	)
	return nil
}

// PublishDemandEvent 把需求事件发布到 Redis 频道，供 WebSocket 层转发。
func PublishDemandEvent(ctx context.Context, client *redis.Client, event DemandEventMessage) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return client.Publish(ctx, DemandEventChannel, body).Err()
}
