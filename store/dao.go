package store

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Repository is where swap actions end up.
type Repository interface {
	SaveSwapAction(action *SwapAction) error
	SelectSwapActions(offer string) ([]*SwapAction, error)
}

type Dao struct {
	db *gorm.DB
}

func NewDao(url, scheme, user, passwd string) (*Dao, error) {
	Logger := logger.Default.LogMode(logger.Warn)
	db, err := gorm.Open(mysql.Open(user+":"+passwd+"@tcp("+url+")/"+
		scheme+"?charset=utf8mb4&parseTime=True"), &gorm.Config{Logger: Logger})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&SwapAction{}, &SwapSignature{}); err != nil {
		return nil, err
	}
	return &Dao{db: db}, nil
}

func (dao *Dao) SaveSwapAction(action *SwapAction) error {
	return dao.db.Create(action).Error
}

func (dao *Dao) SelectSwapActions(offer string) ([]*SwapAction, error) {
	actions := make([]*SwapAction, 0)
	res := dao.db.Where("offer = ?", offer).Preload("SwapSignatures").Order("id").Find(&actions)
	return actions, res.Error
}
