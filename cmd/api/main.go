package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"Micro_Social/internal/model"
	"Micro_Social/internal/pkg"
	"Micro_Social/internal/repository/mysql"
	"Micro_Social/internal/repository/redis"
	"Micro_Social/internal/router"
	"Micro_Social/internal/service"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	dsn := envOr("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/micro_social?charset=utf8mb4&parseTime=True")
	if err := mysql.InitDB(dsn); err != nil {
		panic(err)
	}

	// 连接redis
	if err := redis.Init(envOr("REDIS_ADDR", "127.0.0.1:6379"), os.Getenv("REDIS_PASSWORD"), 0); err != nil {
		panic(err)
	}
	defer redis.Close()

	// 自动建表（开发阶段 OK）
	mysql.DB.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.RelationOutbox{},
		&model.Group{},
		&model.GroupMembership{},
		&model.GroupMessage{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
		&model.ModerationLog{},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 关系事件投递：配了 kafka 走 kafka，否则仅打日志
	sender := service.Sender(service.LogSender)
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   envOr("KAFKA_TOPIC", "relation-events"),
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		sender = func(ctx context.Context, ob *model.RelationOutbox) error {
			return producer.Send(ctx, pkg.MakeKeyFromID(ob.ActorID), []byte(ob.Payload))
		}
	}
	go service.NewOutboxRelayer(mysql.DB, sender).Run(ctx)
	go service.NewFollowCountReconciler(mysql.DB).Run(ctx)

	// Gin
	r := router.InitRouter()
	if err := r.Run(envOr("HTTP_ADDR", ":8080")); err != nil {
		log.Fatal(err)
	}
}
