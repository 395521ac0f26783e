// Package journal records every turn of a play session to Redis so that
// other processes can follow a game or inspect it afterwards. It only
// observes; game state is never restored from it.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Entry is one player action and the narration it produced.
type Entry struct {
	SessionID string    `json:"session_id"`
	Turn      int       `json:"turn"`
	Input     string    `json:"input"`
	Response  string    `json:"response"`
	Room      string    `json:"room"`
	HP        int       `json:"hp"`
	MaxHP     int       `json:"max_hp"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}

// Journal appends entries for a single session. It is safe for concurrent use;
// turns are numbered in the order Record is called.
type Journal struct {
	client     *Client
	sessionID  uuid.UUID
	maxEntries int64
	logger     *slog.Logger

	mu   sync.Mutex
	turn int
}

// New creates a journal for sessionID that keeps at most maxEntries entries.
func New(client *Client, sessionID uuid.UUID, maxEntries int64, logger *slog.Logger) *Journal {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Journal{
		client:     client,
		sessionID:  sessionID,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// SessionID returns the session the journal writes to.
func (j *Journal) SessionID() uuid.UUID { return j.sessionID }

func listKey(id uuid.UUID) string { return fmt.Sprintf("game-journal:%s", id.String()) }

// Channel is the pub/sub channel carrying a session's entries.
func Channel(id uuid.UUID) string { return fmt.Sprintf("game-events:%s", id.String()) }

// Record stamps e with the session, turn number and time, appends it to the
// session list (trimmed to the newest maxEntries) and publishes it.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.turn++
	e.SessionID = j.sessionID.String()
	e.Turn = j.turn
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	data, err := json.Marshal(e)
	if err != nil {
		j.logger.Error("Failed to marshal journal entry", "error", err, "turn", e.Turn)
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	key := listKey(j.sessionID)
	_, err = j.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -j.maxEntries, -1)
		pipe.Publish(ctx, Channel(j.sessionID), data)
		return nil
	})
	if err != nil {
		j.logger.Error("Failed to record journal entry", "error", err, "key", key)
		return fmt.Errorf("failed to record journal entry: %w", err)
	}

	j.logger.Debug("Journal entry recorded", "key", key, "turn", e.Turn)
	return nil
}

// Entries returns up to the last n entries, oldest first.
func (j *Journal) Entries(ctx context.Context, n int64) ([]Entry, error) {
	if n < 1 {
		return nil, nil
	}
	raw, err := j.client.rdb.LRange(ctx, listKey(j.sessionID), -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			j.logger.Warn("Skipping malformed journal entry", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Subscribe follows a session's entries as they are recorded.
// The caller must Close the returned subscription.
func (c *Client) Subscribe(ctx context.Context, sessionID uuid.UUID) *redis.PubSub {
	return c.rdb.Subscribe(ctx, Channel(sessionID))
}
