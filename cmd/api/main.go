package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "credit-conveyor/internal/adapter/http"
	"credit-conveyor/internal/adapter/middleware"
	mysqlrepo "credit-conveyor/internal/adapter/repository/mysql"
	"credit-conveyor/internal/config"
	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
	"credit-conveyor/internal/domain/statement"
	"credit-conveyor/internal/infrastructure/cache"
	"credit-conveyor/internal/infrastructure/db"
	"credit-conveyor/internal/notification/kafka"
	"credit-conveyor/internal/usecase/calculator"
	"credit-conveyor/internal/usecase/deal"
	statementuc "credit-conveyor/internal/usecase/statement"
)

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

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.WithError(err).Fatal("mysql connection failed")
	}
	if err := gdb.AutoMigrate(&client.Client{}, &statement.Statement{}, &credit.Credit{}); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis connection failed")
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	statements := mysqlrepo.NewStatementRepository(gdb)
	clients := mysqlrepo.NewClientRepository(gdb)
	credits := mysqlrepo.NewCreditRepository(gdb)
	unit := mysqlrepo.NewGormUoW(gdb)

	calc := calculator.NewUsecase(cfg.Pricing, log)
	stmtUC := statementuc.NewUsecase(statements, log)
	dealUC := deal.NewUsecase(unit, stmtUC, clients, credits, calc, producer, log)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())

	h := httpadp.NewHandler()
	e.GET("/health", h.Health)

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log.Warnf)
	httpadp.NewDealHandler(dealUC).Register(e, idemp)

	addr := ":" + cfg.AppPort
	log.WithField("addr", addr).Info("listening")
	if err := e.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
