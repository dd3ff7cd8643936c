package service

import (
	"context"
	"log"
	"time"

	"Micro_Social/internal/repository/mysql"

	"gorm.io/gorm"
)

// FollowCountReconciler 定时对账：用户表上的冗余关注/粉丝计数
// 和 follows 表的真实 Accepted 边数对齐
type FollowCountReconciler struct {
	repo      *mysql.FollowCountReconcilerRepo
	batchSize int
	interval  time.Duration
}

func NewFollowCountReconciler(db *gorm.DB) *FollowCountReconciler {
	return &FollowCountReconciler{
		repo:      &mysql.FollowCountReconcilerRepo{DB: db},
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

func (r *FollowCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *FollowCountReconciler) reconcileOnce(ctx context.Context) {
	var lastID uint64
	for {
		users, nextID, err := r.repo.ReconcileList(ctx, r.batchSize, lastID)
		if err != nil {
			log.Printf("reconcile list err: %v", err)
			return
		}
		if len(users) == 0 {
			return
		}
		lastID = nextID

		for _, u := range users {
			realFollowing, err := r.repo.RealFollowings(ctx, u.ID)
			if err != nil {
				continue
			}
			realFollower, err := r.repo.RealFollowers(ctx, u.ID)
			if err != nil {
				continue
			}
			if realFollowing != u.FollowingCount {
				_ = r.repo.FixFollowings(ctx, u.ID, realFollowing)
			}
			if realFollower != u.FollowerCount {
				_ = r.repo.FixFollowers(ctx, u.ID, realFollower)
			}
		}
	}
}
