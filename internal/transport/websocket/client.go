package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks open sockets by connection id.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use, so every socket gets
	// its own write lock.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // guards the maps
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

// AddConnection registers conn under a fresh id and returns the id.
func (cm *ConnectionManager) AddConnection(conn *websocket.Conn) string {
	connID := uuid.NewString()

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[connID] = conn
	cm.writeMu[connID] = &sync.Mutex{}
	return connID
}

func (cm *ConnectionManager) RemoveConnection(connID string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[connID]; exists {
		conn.Close()
		delete(cm.connections, connID)
		delete(cm.writeMu, connID)
	}
}

// SendMessage writes message to one socket. A closed connection is ignored.
func (cm *ConnectionManager) SendMessage(connID string, message ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[connID]
	mu, muExists := cm.writeMu[connID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
