package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend-antrian-klinik/internal/models"
)

// Snapshotter - sumber data display (dipenuhi queue.Service).
type Snapshotter interface {
	DisplaySnapshot(ctx context.Context) ([]models.DisplayRow, error)
}

// Notifier push snapshot display ke websocket hub dan Redis setiap ada
// mutasi antrian yang commit. Debounce: burst mutasi beruntun cuma jadi
// satu query snapshot.
type Notifier struct {
	svc   Snapshotter
	hub   *DisplayHub
	cache *DisplayCache

	mu    sync.Mutex
	timer *time.Timer
}

const debounceDelay = 50 * time.Millisecond

func NewNotifier(svc Snapshotter, hub *DisplayHub, cache *DisplayCache) *Notifier {
	return &Notifier{svc: svc, hub: hub, cache: cache}
}

// QueueChanged dipanggil handler setelah mutasi sukses. Non-blocking.
func (n *Notifier) QueueChanged() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(debounceDelay, n.push)
}

func (n *Notifier) push() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := n.svc.DisplaySnapshot(ctx)
	if err != nil {
		log.Printf("[Display] gagal ambil snapshot: %v", err)
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"type": "display_update",
		"data": rows,
	})
	if err != nil {
		log.Printf("[Display] gagal marshal snapshot: %v", err)
		return
	}

	n.hub.Broadcast <- msg

	if n.cache != nil {
		if err := n.cache.Store(ctx, rows); err != nil {
			log.Printf("[Display] gagal update cache Redis: %v", err)
		}
	}
}
