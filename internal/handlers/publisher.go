package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dicreate/mall-api/internal/logging"
)

// Publisher is what handlers need from the Kafka producer. A nil Publisher
// disables events, publish failures are logged and never fail the request.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event interface{}) error
}

func Publish(c echo.Context, p Publisher, topic string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, fmt.Sprint(event["userID"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}
