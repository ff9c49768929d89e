package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/craftroots/artisan-api/middleware"
	"github.com/craftroots/artisan-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Live order feed, one connection set per artisan.
var (
	feedMu  sync.Mutex
	feedMap = make(map[string]map[*websocket.Conn]bool)
)

// OrderFeedHandler upgrades the connection and streams each new order placed
// with the session artisan until the client disconnects.
func OrderFeedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		artisanID := c.GetString(middleware.UserIDKey)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		feedMu.Lock()
		if feedMap[artisanID] == nil {
			feedMap[artisanID] = make(map[*websocket.Conn]bool)
		}
		feedMap[artisanID][conn] = true
		feedMu.Unlock()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				feedMu.Lock()
				delete(feedMap[artisanID], conn)
				feedMu.Unlock()
				break
			}
		}
	}
}

// BroadcastOrder pushes a freshly placed order to the owning artisan's open
// feed connections.
func BroadcastOrder(order *models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}

	feedMu.Lock()
	defer feedMu.Unlock()
	for conn := range feedMap[order.ArtisanID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(feedMap[order.ArtisanID], conn)
		}
	}
}
