package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	ReactionCntTTL       = 24 * time.Hour
	ReactionCntKeyPrefix = "react:cnt:post" // hash: type -> count
)

// ReactionCacheRepository 帖子表情计数缓存。
// 写侧删 Key，读侧回源重建，交给 TTL 淘汰冷数据。
type ReactionCacheRepository struct {
	cntTTL time.Duration
}

func NewReactionCacheRepository() *ReactionCacheRepository {
	return &ReactionCacheRepository{cntTTL: ReactionCntTTL}
}

func (r *ReactionCacheRepository) cntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", ReactionCntKeyPrefix, postID)
}

// GetCounts 命中返回 (counts, true)；miss 返回 (nil, false)
func (r *ReactionCacheRepository) GetCounts(ctx context.Context, postID uint64) (map[string]int64, bool, error) {
	vals, err := Client.HGetAll(ctx, r.cntKey(postID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(vals) == 0 {
		return nil, false, nil
	}
	counts := make(map[string]int64, len(vals))
	for t, v := range vals {
		if t == "_none" {
			continue
		}
		n, _ := strconv.ParseInt(v, 10, 64)
		counts[t] = n
	}
	return counts, true, nil
}

// SetCounts 回填帖子表情计数
func (r *ReactionCacheRepository) SetCounts(ctx context.Context, postID uint64, counts map[string]int64) error {
	key := r.cntKey(postID)
	if len(counts) == 0 {
		// 空结果也占位，避免穿透；用 0 值哨兵字段
		counts = map[string]int64{"_none": 0}
	}
	fields := make(map[string]any, len(counts))
	for t, n := range counts {
		fields[t] = n
	}
	if err := Client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return Client.Expire(ctx, key, r.cntTTL).Err()
}

// Invalidate 写库成功后删 Key；可选延迟二删，抵消并发回填窗口
func (r *ReactionCacheRepository) Invalidate(ctx context.Context, postID uint64, delay ...time.Duration) error {
	key := r.cntKey(postID)
	if err := Client.Del(ctx, key).Err(); err != nil {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}
