package service

import "sync"

// ClientIDIndex remembers which server id a client-generated id was
// assigned, so a retried create returns the record it already made.
type ClientIDIndex struct {
	mu  sync.Mutex
	ids map[string]string
}

// NewClientIDIndex creates an empty index
func NewClientIDIndex() *ClientIDIndex {
	return &ClientIDIndex{ids: make(map[string]string)}
}

// Lookup returns the server id recorded for clientID
func (x *ClientIDIndex) Lookup(clientID string) (string, bool) {
	if clientID == "" {
		return "", false
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	id, ok := x.ids[clientID]
	return id, ok
}

// Remember records clientID as created under serverID
func (x *ClientIDIndex) Remember(clientID, serverID string) {
	if clientID == "" {
		return
	}
	x.mu.Lock()
	x.ids[clientID] = serverID
	x.mu.Unlock()
}
