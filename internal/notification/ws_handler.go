package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type OwnerHotels interface {
	IDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)
}

// WSHandler serves the live booking feed for the admin console.
type WSHandler struct {
	hub      *Hub
	jwt      *jwt.Service
	hotels   OwnerHotels
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service, hotels OwnerHotels, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSHandler{
		hub:    hub,
		jwt:    jwtService,
		hotels: hotels,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

func (h *WSHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/bookings", h.Stream)
}

// Stream authenticates with ?token= since browsers cannot set headers on websocket upgrades.
// Admins see every booking, hotel owners only bookings of their hotels.
func (h *WSHandler) Stream(c *gin.Context) {
	claims, err := h.jwt.ValidateToken(c.Query("token"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	var accept func(Event) bool
	switch claims.Role {
	case domain.RoleAdmin:
		accept = func(Event) bool { return true }
	case domain.RoleHotelOwner:
		ids, err := h.hotels.IDsByOwner(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load hotels")
			return
		}
		owned := make(map[int64]bool, len(ids))
		for _, id := range ids {
			owned[id] = true
		}
		accept = func(ev Event) bool { return owned[ev.HotelID] }
	default:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	sub := h.hub.Subscribe(claims.UserID, accept)
	log := logrus.WithFields(logrus.Fields{"user_id": claims.UserID, "role": claims.Role})
	log.Info("booking feed connected")

	go h.writeLoop(conn, sub)
	h.readLoop(conn)

	h.hub.Unsubscribe(sub)
	log.Info("booking feed disconnected")
}

// readLoop only drains control frames; it returns when the client goes away.
func (h *WSHandler) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Debug("booking feed read error")
			}
			return
		}
	}
}

func (h *WSHandler) writeLoop(conn *websocket.Conn, sub *Subscription) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.C():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
