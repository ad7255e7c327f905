package storage

import (
	"fmt"
	"log/slog"

	"github.com/one-love/onelove/pkg/config"
	"github.com/one-love/onelove/pkg/model"
	slogGorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDatabase(logger *slog.Logger, c config.Postgresql) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable", c.Host, c.Username, c.Password, c.DatabaseName, c.Port)

	databaseConfig := gorm.Config{
		Logger: slogGorm.New(
			slogGorm.WithHandler(logger.Handler()),
			slogGorm.WithTraceAll(),
		),
		// duplicate keys should surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), &databaseConfig)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},

		&model.Cluster{},
		&model.Role{},
		&model.Provider{},
		&model.Host{},

		&model.Service{},

		&model.Provision{},
		&model.ProvisionLog{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
