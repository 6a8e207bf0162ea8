package storage

import (
	"time"

	"github.com/abhishek-mmvi/CrayonMonsters/internal/game"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(b *game.Battle) error {
	return r.db.Create(b).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.Battle, error) {
	var b game.Battle
	if err := r.db.Preload("Players.Creatures").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.Battle, error) {
	var b game.Battle
	err := r.db.Preload("Players.Creatures").Where("join_code = ?", code).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepository) UpdateBattle(b *game.Battle) error {
	return r.db.Session(&gorm.Session{FullSaveAssociations: true}).Save(b).Error
}

func (r *sqliteRepository) GetPublicBattles(maxAge time.Duration) ([]game.Battle, error) {
	var battles []game.Battle
	cutoff := time.Now().Add(-maxAge)
	if err := r.db.Preload("Players").
		Where("private = ? AND status = ? AND created_at > ?", false, game.StatusWaitingForPlayers, cutoff).
		Order("created_at desc").
		Find(&battles).Error; err != nil {
		return nil, err
	}
	// Only list lobbies that still have their creator in them.
	filtered := make([]game.Battle, 0, len(battles))
	for i := range battles {
		if len(battles[i].Players) >= 1 {
			filtered = append(filtered, battles[i])
		}
	}
	return filtered, nil
}

func (r *sqliteRepository) RemovePlayerByUUID(battleID uint, playerUUID string) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var p game.Player
	if err := tx.Where("battle_id = ? AND player_uuid = ?", battleID, playerUUID).First(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("player_id = ?", p.ID).Delete(&game.Creature{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&p).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func (r *sqliteRepository) GetCachedDefinition(labelKey string) (*game.CreatureDefinition, error) {
	var row game.CreatureDefCache
	if err := r.db.Where("label_key = ?", labelKey).First(&row).Error; err != nil {
		return nil, err
	}
	return &row.Definition, nil
}

func (r *sqliteRepository) SaveCachedDefinition(labelKey string, def game.CreatureDefinition) error {
	row := game.CreatureDefCache{LabelKey: labelKey, Definition: def}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "label_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"definition"}),
	}).Create(&row).Error
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	u.PlayerName = name
	u.PlayerUUID = uuid
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(b *game.Battle, resignedEmail string) error {
	upsert := func(email, uuid, name string, played, wins, resigns int) error {
		if email == "" {
			return nil
		}
		var u game.User
		if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
			} else {
				return err
			}
		}
		u.PlayerName = name
		u.PlayerUUID = uuid
		u.GamesPlayed += played
		u.Wins += wins
		u.Resignations += resigns
		return r.db.Save(&u).Error
	}
	if len(b.Players) != 2 {
		return nil
	}
	p1, p2 := b.Players[0], b.Players[1]
	if err := upsert(p1.PlayerEmail, p1.PlayerUUID, p1.PlayerName, 1, 0, 0); err != nil {
		return err
	}
	if err := upsert(p2.PlayerEmail, p2.PlayerUUID, p2.PlayerName, 1, 0, 0); err != nil {
		return err
	}
	if b.Winner != "" {
		if p1.PlayerUUID == b.Winner {
			if err := upsert(p1.PlayerEmail, p1.PlayerUUID, p1.PlayerName, 0, 1, 0); err != nil {
				return err
			}
		} else if p2.PlayerUUID == b.Winner {
			if err := upsert(p2.PlayerEmail, p2.PlayerUUID, p2.PlayerName, 0, 1, 0); err != nil {
				return err
			}
		}
	}
	if resignedEmail != "" {
		if p1.PlayerEmail == resignedEmail {
			return upsert(p1.PlayerEmail, p1.PlayerUUID, p1.PlayerName, 0, 0, 1)
		}
		if p2.PlayerEmail == resignedEmail {
			return upsert(p2.PlayerEmail, p2.PlayerUUID, p2.PlayerName, 0, 0, 1)
		}
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqliteRepository) ClaimTimedOutBattleIDs(now time.Time, workerID string, leaseFor time.Duration) ([]uint, error) {
	var ids []uint
	staleLease := now.Add(-leaseFor)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var battles []game.Battle
		if err := tx.Select("id").
			Where("status = ? AND phase = ? AND move_deadline <= ?", game.StatusInProgress, game.PhaseAwaitingMoves, now).
			Where("claimed_by = ? OR claimed_at <= ?", "", staleLease).
			Find(&battles).Error; err != nil {
			return err
		}
		for _, b := range battles {
			res := tx.Model(&game.Battle{}).
				Where("id = ? AND (claimed_by = ? OR claimed_at <= ?)", b.ID, "", staleLease).
				Updates(map[string]interface{}{"claimed_by": workerID, "claimed_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				ids = append(ids, b.ID)
			}
		}
		return nil
	})
	return ids, err
}
