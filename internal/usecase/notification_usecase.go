package usecase

import "context"

// BroadcastInput selects recipients and content for a push broadcast.
// An empty EvaluatorIDs list targets every evaluator.
type BroadcastInput struct {
	EvaluatorIDs []string
	Title        string
	Body         string
	Data         map[string]string
}

// BroadcastSummary reports partial success of a broadcast.
type BroadcastSummary struct {
	Sent                 int `json:"sent"`
	Failed               int `json:"failed"`
	InvalidTokensRemoved int `json:"invalidTokensRemoved"`
}

// NotificationUsecase defines admin push-notification operations.
type NotificationUsecase interface {
	// Broadcast sends a push notification to the selected evaluators'
	// registered tokens, pruning invalid tokens from their records. One
	// evaluator's failure never aborts the batch.
	Broadcast(ctx context.Context, input *BroadcastInput) (*BroadcastSummary, error)
}
