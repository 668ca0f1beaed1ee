package handlers

import (
	"bufio"
	"time"

	"github.com/biosecret/task-tracker/events"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"
)

const keepAliveInterval = 15 * time.Second

// HandleEvents stream các event user/task dưới dạng Server-Sent Events
// @Summary Stream event
// @Tags system
// @Produce text/event-stream
// @Router /events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	sub := h.broker.Subscribe(events.DefaultBuffer)
	log.Infof("SSE client connected from %s", c.IP())

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		keepAlive := time.NewTicker(keepAliveInterval)
		defer keepAlive.Stop()
		defer sub.Close()

		for {
			select {
			case ev, ok := <-sub.C:
				if !ok {
					return
				}
				msg, err := events.FormatSSE(ev)
				if err != nil {
					log.Errorf("Error formatting sse message: %v", err)
					continue
				}
				if _, err := w.WriteString(msg); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					log.Infof("SSE client disconnected: %v", err)
					return
				}
			case <-keepAlive.C:
				if _, err := w.WriteString(events.KeepAliveMessage); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					log.Infof("SSE client disconnected: %v", err)
					return
				}
			}
		}
	}))

	return nil
}
