package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"battwatch.xyz/battery-health-service/pkg/common"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// cross-origin policy is enforced by the CORS layer in front of gin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Stream upgrades the connection and forwards broadcaster events until the
// client goes away. The first frame a client sees is always a snapshot,
// queued by Subscribe before any live event.
func (rs *RestfulServer) Stream(c *gin.Context) {
	logger := common.GetLoggerWith(common.LoggerNameRestfulServer,
		zap.String(common.LoggerFieldCategory, common.LoggerCategorySubscription))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sub, err := rs.Broadcaster.Subscribe()
	if err != nil {
		logger.Error("subscribe failed", zap.Error(err))
		conn.Close()
		return
	}

	logger.Info("subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

	// reader goroutine only watches for close; inbound frames are ignored
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		rs.Broadcaster.Unsubscribe(sub)
		conn.Close()
		logger.Info("subscriber disconnected", zap.String("remote", conn.RemoteAddr().String()))
	}()

	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				// dropped by the broadcaster for falling behind
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
