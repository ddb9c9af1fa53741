package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeDemandAgeingScan = "demand:ageing_scan"
)

// DemandAgeingScanPayload 描述一次需求超龄巡检。
type DemandAgeingScanPayload struct {
	StaleAfterWeeks int    `json:"stale_after_weeks"`
	CorrelationID   string `json:"correlation_id"`
}

// NewDemandAgeingScanTask 构造一次需求超龄巡检任务。
func NewDemandAgeingScanTask(staleAfterWeeks int, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(DemandAgeingScanPayload{
		StaleAfterWeeks: staleAfterWeeks,
		CorrelationID:   correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDemandAgeingScan, payload), nil
}
