package main

import (
	"os"

	"github.com/sulakshana2003/BackEnd-R/config"

	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	db, err := config.ConnectionDb(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("database")
	}
	if err := config.Migrate(db); err != nil {
		logger.WithError(err).Fatal("migrate")
	}
	logger.Info("migration completed")
}
