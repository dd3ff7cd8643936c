package service

import (
	"context"
	"log"
	"time"

	"Micro_Social/internal/model"
	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.RelationOutbox) error

// OutboxRelayer 把关系事件从 outbox 表异步投递出去（kafka），
// 和主事务解耦，失败计数重试
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run 启动投递循环，ctx 取消时退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender 兜底 sender：没配 kafka 时只打日志
func LogSender(ctx context.Context, ob *model.RelationOutbox) error {
	log.Printf("OUTBOX SEND type=%s actor=%d target=%d payload=%s",
		ob.EventType, ob.ActorID, ob.TargetID, ob.Payload)
	return nil
}
