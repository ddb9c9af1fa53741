package worker

// 统一的 WebSocket 消息协议（通过 Redis Pub/Sub 转发给前端）。
// 注意：这里的字段名与前端解析保持一致。

// DemandEventChannel 是需求事件的 Redis Pub/Sub 频道。
const DemandEventChannel = "demand:events"

// DemandEventMessage 描述一条需求变更或巡检事件。
type DemandEventMessage struct {
	Event         string `json:"event"`
	DemandID      int    `json:"demand_id,omitempty"`
	ClientName    string `json:"client_name,omitempty"`
	AgeingWeeks   int    `json:"ageing_weeks,omitempty"`
	StaleCount    int    `json:"stale_count,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}
