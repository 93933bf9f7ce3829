package notification

import (
	"context"
	"fmt"

	"htga/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a new Firebase notification service instance
// from the shared Firebase app.
func NewFirebaseService(ctx context.Context, app *firebase.App) (service.NotificationService, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &firebaseService{
		client: client,
	}, nil
}

// multicastLimit is Firebase's token cap per multicast request.
const multicastLimit = 500

// SendBatchNotification sends push notifications to multiple device tokens.
// Token sets above the multicast limit are chunked into multiple requests.
func (s *firebaseService) SendBatchNotification(ctx context.Context, tokens []string, title, body string, data map[string]string) (successCount, failureCount int, invalidTokens []string, err error) {
	if len(tokens) == 0 {
		return 0, 0, nil, nil
	}

	invalidTokens = make([]string, 0)
	for start := 0; start < len(tokens); start += multicastLimit {
		end := min(start+multicastLimit, len(tokens))
		chunk := tokens[start:end]

		message := &messaging.MulticastMessage{
			Tokens: chunk,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}

		response, err := s.client.SendEachForMulticast(ctx, message)
		if err != nil {
			return successCount, failureCount, invalidTokens, fmt.Errorf("failed to send multicast notification: %w", err)
		}

		successCount += response.SuccessCount
		failureCount += response.FailureCount

		for idx, sendResponse := range response.Responses {
			if sendResponse.Error != nil {
				// Check if error is due to invalid or unregistered token
				if messaging.IsInvalidArgument(sendResponse.Error) ||
					messaging.IsUnregistered(sendResponse.Error) {
					invalidTokens = append(invalidTokens, chunk[idx])
				}
			}
		}
	}

	return successCount, failureCount, invalidTokens, nil
}
