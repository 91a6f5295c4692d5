package main

import (
	"context"
	"log"
	"os"
	"time"

	common "github.com/NordCoder/Uptimer/internal/config/common"
	kafkaRepo "github.com/NordCoder/Uptimer/internal/repository/kafka"
	"go.uber.org/zap"
)

type initConfig struct {
	Kafka             common.Kafka  `mapstructure:"kafka"`
	Partitions        int           `mapstructure:"partitions"`
	ReplicationFactor int           `mapstructure:"replication_factor"`
	Wait              time.Duration `mapstructure:"wait"`
}

func main() {
	v := common.NewViper(os.Getenv("CONFIG_PATH"))
	common.SetKafkaDefaults(v, "")
	v.SetDefault("partitions", 1)
	v.SetDefault("replication_factor", 1)
	v.SetDefault("wait", "30s")

	var cfg initConfig
	if err := common.Unmarshal(v, &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Kafka.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	l, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Wait+30*time.Second)
	defer cancel()

	err = kafkaRepo.EnsureTopic(ctx, cfg.Kafka.Brokers, kafkaRepo.TopicSpec{
		Name:              cfg.Kafka.Topic,
		NumPartitions:     cfg.Partitions,
		ReplicationFactor: cfg.ReplicationFactor,
		MaxWait:           cfg.Wait,
	}, l)
	if err != nil {
		l.Fatal("ensure topic", zap.String("topic", cfg.Kafka.Topic), zap.Error(err))
	}
	l.Info("kafka-init ok")
}
