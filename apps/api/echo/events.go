package echoapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core"
)

// keep-alive comment interval; proxies tend to cut idle streams around 60s
const sseKeepAliveInterval = 25 * time.Second

// registerEventsAPI streams change notifications over Server-Sent Events.
// Each event is a JSON object {"type": "<entity collection>"} telling clients
// which collection to re-fetch.
func registerEventsAPI(g *echo.Group, bus core.EventBus) {
	g.GET("/events", func(ctx echo.Context) error {
		res := ctx.Response()
		res.Header().Set(echo.HeaderContentType, "text/event-stream")
		res.Header().Set("Cache-Control", "no-cache")
		res.Header().Set("Connection", "keep-alive")
		res.WriteHeader(http.StatusOK)
		res.Flush()

		events, cancel := bus.Subscribe()
		defer cancel()

		ticker := time.NewTicker(sseKeepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Request().Context().Done():
				return nil
			case eventType := <-events:
				payload, err := json.Marshal(echo.Map{"type": eventType})
				if err != nil {
					return err
				}
				if _, err = fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
					return nil // client gone
				}
				res.Flush()
			case <-ticker.C:
				if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
					return nil
				}
				res.Flush()
			}
		}
	})
}
