package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"credit-conveyor/internal/config"
	"credit-conveyor/internal/dossier"
	"credit-conveyor/internal/infrastructure/mail"
	"credit-conveyor/internal/infrastructure/storage"
	"credit-conveyor/internal/notification"
	"credit-conveyor/internal/notification/kafka"
)

const consumerGroup = "dossier"

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewClient(ctx, storage.Config{
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		UseSSL:          cfg.S3UseSSL,
	})
	if err != nil {
		log.WithError(err).Fatal("s3 connection failed")
	}

	sender := mail.NewSender(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SenderEmail,
	}, log)

	worker := dossier.NewWorker(dossier.NewDealClient(cfg.DealBaseURL), store, sender, log)

	topics := []string{
		notification.TopicFinishRegistration,
		notification.TopicCreateDocuments,
		notification.TopicSendDocuments,
		notification.TopicSendSes,
		notification.TopicCreditIssued,
		notification.TopicStatementDenied,
	}

	var wg sync.WaitGroup
	for _, topic := range topics {
		c := kafka.NewConsumer(cfg.KafkaBrokers, consumerGroup, topic, worker.Handler(topic), log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer c.Close()
			if err := c.Start(ctx); err != nil {
				log.WithError(err).Error("consumer failed")
				stop()
			}
		}()
	}

	wg.Wait()
	log.Info("dossier worker stopped")
}
