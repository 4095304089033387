package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время, которое разрешено клиенту читать следующее сообщение.
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту.
	pingPeriod = (pongWait * 9) / 10

	// Размер буфера канала исходящих сообщений клиента.
	// Медленный клиент, переполнивший буфер, отключается.
	clientBufferSize = 64
)

// Event - сообщение ленты мониторинга, отправляемое подписчикам.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	SentAt  time.Time   `json:"sent_at"`
}

// subscriber - одно WebSocket соединение администратора
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Monitor - хаб живой ленты событий безопасности для администраторов.
// Подписчики получают каждое новое событие журнала безопасности; доставка
// best-effort, источником истины остается таблица security_logs.
type Monitor struct {
	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
	upgrader    websocket.Upgrader
}

// NewMonitor создает новый хаб мониторинга
func NewMonitor() *Monitor {
	return &Monitor{
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Происхождение запроса проверяется CORS-слоем до апгрейда
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SubscriberCount возвращает количество подключенных подписчиков
func (m *Monitor) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Publish рассылает событие всем подписчикам. Никогда не блокируется:
// подписчик с переполненным буфером отключается.
func (m *Monitor) Publish(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{
		Type:    eventType,
		Payload: payload,
		SentAt:  time.Now(),
	})
	if err != nil {
		log.Printf("[Monitor] Ошибка сериализации события %s: %v", eventType, err)
		return
	}

	m.mu.RLock()
	var overflowed []*subscriber
	for sub := range m.subscribers {
		select {
		case sub.send <- data:
		default:
			overflowed = append(overflowed, sub)
		}
	}
	m.mu.RUnlock()

	for _, sub := range overflowed {
		log.Printf("[Monitor] Буфер подписчика переполнен, отключаем")
		m.remove(sub)
	}
}

// ServeHTTP выполняет апгрейд соединения и запускает циклы чтения и записи.
// Авторизация (admin only) выполняется middleware до этого вызова.
func (m *Monitor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Monitor] Ошибка апгрейда соединения: %v", err)
		return
	}

	sub := &subscriber{
		conn: conn,
		send: make(chan []byte, clientBufferSize),
	}

	m.mu.Lock()
	m.subscribers[sub] = struct{}{}
	m.mu.Unlock()
	log.Printf("[Monitor] Подписчик подключен, всего: %d", m.SubscriberCount())

	go m.writePump(sub)
	go m.readPump(sub)
}

// remove отключает подписчика и закрывает его соединение
func (m *Monitor) remove(sub *subscriber) {
	m.mu.Lock()
	_, ok := m.subscribers[sub]
	if ok {
		delete(m.subscribers, sub)
		close(sub.send)
	}
	m.mu.Unlock()

	if ok {
		_ = sub.conn.Close()
	}
}

// readPump читает входящие сообщения только ради обработки pong и закрытия.
// Лента односторонняя, содержимое входящих сообщений игнорируется.
func (m *Monitor) readPump(sub *subscriber) {
	defer m.remove(sub)

	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump пишет события из канала подписчика и периодические ping
func (m *Monitor) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		m.remove(sub)
	}()

	for {
		select {
		case data, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
