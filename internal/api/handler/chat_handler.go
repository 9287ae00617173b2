package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lumina-market/storefront/internal/core/ports"
)

const (
	eventFragment = "fragment"
	eventDone     = "done"
	eventError    = "error"
	eventRejected = "rejected"
)

// ChatHandler serves the shopping assistant widget.
type ChatHandler struct {
	service ports.ChatService
	// anyOrigin disables the WebSocket same-origin check, for local development.
	anyOrigin bool
	log       zerolog.Logger
}

func NewChatHandler(service ports.ChatService, anyOrigin bool, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{service: service, anyOrigin: anyOrigin, log: log}
}

// Transcript handles GET /v1/chat/messages. The first call starts the
// widget and returns the greeting.
//
// @Summary      Chat transcript
// @Tags         chat
// @Produce      json
// @Success      200  {object}  transcriptResponse
// @Router       /v1/chat/messages [get]
func (h *ChatHandler) Transcript(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	msgs, err := h.service.Transcript(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transcriptResponse{Messages: msgs})
}

// Send handles POST /v1/chat/messages and streams the reply as server-sent
// events. Each fragment event carries the assistant message so far; the
// stream ends with a done event, or an error event carrying the apology.
// Disconnecting does not cancel the reply.
//
// @Summary      Send a chat message
// @Tags         chat
// @Accept       json
// @Produce      text/event-stream
// @Param        body  body      chatSendRequest  true  "Message"
// @Success      200   {object}  chatEvent
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/chat/messages [post]
func (h *ChatHandler) Send(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	var req chatSendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	st, err := h.service.Send(ctx, clientID, req.Message)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	err = follow(ctx, st, func(ev chatEvent) error { return writeSSE(res, ev) })
	if err != nil && !errors.Is(err, context.Canceled) {
		h.log.Debug().Err(err).Str("client_id", clientID).Msg("chat event stream ended early")
	}
	return nil
}

// Socket handles GET /v1/chat/ws. Each text frame {"message": "..."} is sent
// to the assistant and answered with the same events as Send, as JSON frames.
//
// @Summary      Chat over WebSocket
// @Tags         chat
// @Success      101
// @Router       /v1/chat/ws [get]
func (h *ChatHandler) Socket(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{InsecureSkipVerify: h.anyOrigin})
	if err != nil {
		// Accept has already written the failure response.
		return nil
	}
	defer conn.CloseNow()

	ctx := c.Request().Context()
	for {
		var req chatSendRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				h.log.Debug().Err(err).Str("client_id", clientID).Msg("chat socket read failed")
			}
			return nil
		}

		st, err := h.service.Send(ctx, clientID, req.Message)
		if err != nil {
			if werr := wsjson.Write(ctx, conn, chatEvent{Type: eventRejected, Error: err.Error()}); werr != nil {
				return nil
			}
			continue
		}

		if err := follow(ctx, st, func(ev chatEvent) error { return wsjson.Write(ctx, conn, ev) }); err != nil {
			return nil
		}
	}
}

// follow emits a fragment event on every change and one final event when the
// reply settles. It returns early when ctx ends or emit fails; the reply
// itself keeps streaming.
func follow(ctx context.Context, st ports.ChatStream, emit func(chatEvent) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-st.Changed():
			msg := st.Message()
			if err := emit(chatEvent{Type: eventFragment, Message: &msg}); err != nil {
				return err
			}
		case <-st.Done():
			msg := st.Message()
			ev := chatEvent{Type: eventDone, Message: &msg}
			if st.Err() != nil {
				ev.Type = eventError
				ev.Apology = st.Apology()
			}
			return emit(ev)
		}
	}
}

func writeSSE(res *echo.Response, ev chatEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(res, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return err
	}
	res.Flush()
	return nil
}
