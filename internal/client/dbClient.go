package client

import (
	"print3d-shop/internal/model"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Account{},
		&model.Session{},
		&model.Upload{},
		&model.Purchase{},
	); err != nil {
		logrus.Fatal(err)
	}

	return db
}
