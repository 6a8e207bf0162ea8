package storage

import (
	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&game.Battle{},
		&game.Player{},
		&game.Creature{},
		&game.User{},
		&game.CreatureDefCache{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
