package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"taskflow_realtime/internal/realtime/domain"
	"taskflow_realtime/pkg/logger"
	"taskflow_realtime/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// RealtimeWebsocketHandler websocket entry, translates frames into hub operations
type RealtimeWebsocketHandler struct {
	hub          *Hub
	typing       *TypingBroadcaster
	pingInterval time.Duration
	sendBuffer   int
}

// NewRealtimeWebsocketHandler create RealtimeWebsocketHandler
func NewRealtimeWebsocketHandler(hub *Hub, typing *TypingBroadcaster, pingInterval time.Duration, sendBuffer int) *RealtimeWebsocketHandler {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &RealtimeWebsocketHandler{
		hub:          hub,
		typing:       typing,
		pingInterval: pingInterval,
		sendBuffer:   sendBuffer,
	}
}

// chanSender buffered queue drained by the connection writer
type chanSender struct {
	ch chan domain.WSResponse
}

func (s *chanSender) Enqueue(resp domain.WSResponse) bool {
	select {
	case s.ch <- resp:
		return true
	default:
		return false
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *RealtimeWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	memberID, _ := conn.Locals(middlewares.TokenMemberID).(string)

	out := &chanSender{ch: make(chan domain.WSResponse, h.sendBuffer)}
	connID := h.hub.Register(out)
	log := logger.Log.With(zap.String("connID", connID), zap.String("memberID", memberID))
	log.Info("websocket open")

	ctxClose, cancel := context.WithCancel(ctx)
	writerDone := make(chan struct{})

	defer func() {
		h.hub.Disconnect(connID)
		cancel()
		conn.Close()
		<-writerDone
		log.Info("websocket close")
	}()

	//client發出close, fiber會在read msg 回傳err
	conn.SetCloseHandler(func(code int, text string) error {
		log.Debug("websocket close frame", zap.Int("code", code), zap.String("text", text))
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		log.Debug("received pong")
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	go h.writeLoop(ctxClose, conn, out, writerDone, log)

	out.Enqueue(domain.NewResponse(domain.Connected, domain.ConnectedPayload{SocketID: connID}))

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				log.Debug("connection closed", zap.Error(err))
			} else {
				//直接斷線 1006
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			h.sendError(connID, "", "unsupported message type")
			continue
		}
		h.Dispatch(connID, memberID, message)
	}
}

// writeLoop single writer: queued frames and periodic pings
func (h *RealtimeWebsocketHandler) writeLoop(ctx context.Context, conn *websocket.Conn, out *chanSender, done chan<- struct{}, log *logger.LogInfo) {
	ticker := time.NewTicker(h.pingInterval)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case resp := <-out.ch:
			if err := conn.WriteJSON(resp); err != nil {
				log.Warn("write message error", zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(time.Second)); err != nil {
				log.Warn("ping error", zap.Error(err))
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

// Dispatch handle one client frame. memberID is the verified token subject, empty when absent.
func (h *RealtimeWebsocketHandler) Dispatch(connID, memberID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		h.sendError(connID, "", "invalid frame")
		return
	}

	var err error
	switch domain.Event(req.Event) {
	case domain.Authenticate:
		err = h.authenticate(connID, memberID, req.Data)
	case domain.JoinChannel:
		err = h.withRoomID(req.Data, func(roomID string) { h.hub.JoinChatRoom(connID, roomID) })
	case domain.LeaveChannel:
		err = h.withRoomID(req.Data, func(roomID string) { h.hub.LeaveChatRoom(connID, roomID) })
	case domain.TypingStart:
		err = h.typingStart(connID, memberID, req.Data)
	case domain.JoinVoiceChannel:
		err = h.joinVoice(connID, memberID, req.Data)
	case domain.LeaveVoiceChannel:
		err = h.withRoomID(req.Data, func(roomID string) { h.hub.LeaveVoiceRoom(connID, roomID) })
	case domain.VoiceSignal:
		err = h.voiceSignal(connID, req.Data)
	default:
		err = fmt.Errorf("unknown event %q", req.Event)
	}

	if err != nil {
		logger.Log.Debug("websocket event rejected", zap.String("connID", connID), zap.String("event", req.Event), zap.Error(err))
		h.sendError(connID, req.Event, err.Error())
	}
}

func (h *RealtimeWebsocketHandler) authenticate(connID, memberID string, data json.RawMessage) error {
	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return fmt.Errorf("invalid authenticate payload")
	}
	if memberID != "" {
		identity.ID = memberID
	}
	h.hub.Authenticate(connID, identity)
	return nil
}

func (h *RealtimeWebsocketHandler) typingStart(connID, memberID string, data json.RawMessage) error {
	var p domain.TypingStartPayload
	if err := json.Unmarshal(data, &p); err != nil || p.ChannelID == "" {
		return fmt.Errorf("channelId required")
	}
	if memberID != "" {
		p.UserID = memberID
	}
	if identity := h.hub.Identity(connID); identity != nil {
		if p.UserID == "" {
			p.UserID = identity.ID
		}
		if p.UserName == "" {
			p.UserName = identity.Name
		}
	}
	if p.UserID == "" {
		return fmt.Errorf("userId required")
	}
	h.typing.Announce(connID, p.ChannelID, p.UserID, p.UserName)
	return nil
}

func (h *RealtimeWebsocketHandler) joinVoice(connID, memberID string, data json.RawMessage) error {
	var p domain.JoinVoicePayload
	if err := json.Unmarshal(data, &p); err != nil || p.ChannelID == "" {
		return fmt.Errorf("channelId required")
	}
	if memberID != "" {
		p.User.ID = memberID
	}
	h.hub.JoinVoiceRoom(connID, p.ChannelID, p.User)
	return nil
}

func (h *RealtimeWebsocketHandler) voiceSignal(connID string, data json.RawMessage) error {
	var p domain.VoiceSignalRequest
	if err := json.Unmarshal(data, &p); err != nil || p.TargetSocketID == "" {
		return fmt.Errorf("targetSocketId required")
	}
	h.hub.Relay(connID, p.ChannelID, p.TargetSocketID, p.Signal)
	return nil
}

// withRoomID accepts "roomId" or {"channelId": "roomId"}
func (h *RealtimeWebsocketHandler) withRoomID(data json.RawMessage, fn func(roomID string)) error {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil {
		var obj struct {
			ChannelID string `json:"channelId"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("room id required")
		}
		roomID = obj.ChannelID
	}
	if roomID == "" {
		return fmt.Errorf("room id required")
	}
	fn(roomID)
	return nil
}

func (h *RealtimeWebsocketHandler) sendError(connID, event, errorMsg string) {
	h.hub.SendTo(connID, domain.NewResponse(domain.Error, domain.ErrorPayload{Event: event, Error: errorMsg}))
}
