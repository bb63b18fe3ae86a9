package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/f57725199-cmyk/stuadm/internal/database"
	"github.com/f57725199-cmyk/stuadm/internal/models"
	"github.com/f57725199-cmyk/stuadm/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FastReadTimeout bounds the fast-store leg of a read so a degraded network
// never stalls the caller; on timeout the read falls through to the durable
// store.
const FastReadTimeout = 2500 * time.Millisecond

const updateChannelPrefix = "record_updates:"

// ReadRaw reads one record through the tiers: in-process cache, then the
// fast store (bounded), then the durable store. The first hit wins. Both
// "not found" and "store unreachable" come back as nil; failures are logged
// here and never surfaced.
func ReadRaw(ctx context.Context, key string) []byte {
	if data, ok := LocalCache.Get(key); ok {
		return data
	}

	if database.RedisClient != nil {
		fastCtx, cancel := context.WithTimeout(ctx, FastReadTimeout)
		val, err := database.RedisClient.Get(fastCtx, key).Bytes()
		cancel()
		if err == nil {
			LocalCache.Set(key, val)
			return val
		}
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("fast store read failed, falling through",
				zap.String("key", key), zap.Error(err))
		}
	}

	var doc models.ContentDocument
	if err := database.DB.First(&doc, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("durable store read failed",
				zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	LocalCache.Set(key, []byte(doc.Data))
	return []byte(doc.Data)
}

// WriteRaw persists one record to every tier, best effort: a failure on
// either remote store is logged, not retried, and does not roll back the
// other. Subscribers on the key are notified through the fast store.
func WriteRaw(ctx context.Context, key string, data []byte) {
	LocalCache.Set(key, data)

	if database.RedisClient != nil {
		if err := database.RedisClient.Set(ctx, key, data, 0).Err(); err != nil {
			logger.Log.Error("fast store write failed",
				zap.String("key", key), zap.Error(err))
		}
		if err := database.RedisClient.Publish(ctx, updateChannelPrefix+key, data).Err(); err != nil {
			logger.Log.Warn("update publish failed",
				zap.String("key", key), zap.Error(err))
		}
	}

	doc := models.ContentDocument{Key: key, Data: datatypes.JSON(data), UpdatedAt: time.Now()}
	if err := database.DB.Save(&doc).Error; err != nil {
		logger.Log.Error("durable store write failed",
			zap.String("key", key), zap.Error(err))
	}
}

// ReadContent reads and decodes the content bundle under key. Absent,
// unreachable and undecodable all come back nil.
func ReadContent(ctx context.Context, key string) *models.ContentRecord {
	data := ReadRaw(ctx, key)
	if data == nil {
		return nil
	}
	var rec models.ContentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.Log.Warn("undecodable content record",
			zap.String("key", key), zap.Error(err))
		return nil
	}
	return &rec
}

// WriteContent replaces the whole content bundle under key. Partial updates
// must go through MergeContent instead, or sibling sections are lost.
func WriteContent(ctx context.Context, key string, rec *models.ContentRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	WriteRaw(ctx, key, data)
	return nil
}

// MergeContent is the read-merge-write path for partial updates: it loads
// the existing record, lays the patch's populated sections on top and
// writes the merged result back to every tier.
func MergeContent(ctx context.Context, key string, patch *models.ContentRecord) (*models.ContentRecord, error) {
	existing := ReadContent(ctx, key)
	if existing == nil {
		existing = &models.ContentRecord{}
	}
	existing.Merge(patch)
	if err := WriteContent(ctx, key, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Subscribe establishes a live feed for one key from the fast store. If the
// fast store holds no current value, the durable store is read once to seed
// the callback. The returned func tears the feed down; every Subscribe must
// be paired with a call to it.
func Subscribe(ctx context.Context, key string, cb func([]byte)) (func(), error) {
	if database.RedisClient == nil {
		return nil, errors.New("fast store unavailable")
	}

	pubsub := database.RedisClient.Subscribe(ctx, updateChannelPrefix+key)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	// Seed with the current value before the live feed starts.
	if current := ReadRaw(ctx, key); current != nil {
		cb(current)
	}

	done := make(chan struct{})
	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				cb([]byte(msg.Payload))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			pubsub.Close()
		})
	}, nil
}
