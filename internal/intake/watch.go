package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/logobrief/internal/logging"
	"github.com/muurk/logobrief/internal/version"
)

// Watch connects to an intake server's feed and calls fn for every event
// until ctx is cancelled or the server closes the connection. It returns nil
// when the server or ctx ends the stream.
func Watch(ctx context.Context, feedURL string, fn func(FeedEvent)) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	header := http.Header{"User-Agent": []string{version.UserAgent()}}

	conn, resp, err := dialer.DialContext(ctx, feedURL, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("failed to connect to feed %s: HTTP %d", feedURL, resp.StatusCode)
		}
		return fmt.Errorf("failed to connect to feed %s: %w", feedURL, err)
	}
	defer func() { _ = conn.Close() }()

	logging.LogConnection(feedURL, "feed_connected")

	// unblock ReadMessage when ctx ends
	stop := context.AfterFunc(ctx, func() {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = conn.Close()
	})
	defer stop()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("feed read failed: %w", err)
		}

		var ev FeedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			logging.Warn("Ignoring malformed feed event", zap.Error(err))
			continue
		}
		fn(ev)
	}
}
