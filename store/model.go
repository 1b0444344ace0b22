package store

type SwapSignature struct {
	Signature    string `gorm:"type:varchar(120);not null"`
	Step         int    `gorm:"type:int(11);not null"`
	Explorer     string `gorm:"type:varchar(255)"`
	SwapActionId uint64 `gorm:"type:bigint(20);not null"`
}

// SwapAction is the terminal record of one make or take.
type SwapAction struct {
	Id             uint64           `gorm:"primaryKey;autoIncrement;type:bigint(20);not null"`
	Action         string           `gorm:"type:varchar(16);not null"`
	Offer          string           `gorm:"type:varchar(48);not null;index"`
	OfferId        uint64           `gorm:"type:bigint(20);not null"`
	Signer         string           `gorm:"type:varchar(48);not null;index"`
	State          string           `gorm:"type:varchar(24);not null"`
	Reason         string           `gorm:"type:varchar(512)"`
	FinishTime     int64            `gorm:"type:bigint(20);not null"`
	SwapSignatures []*SwapSignature `gorm:"foreignKey:SwapActionId;references:Id"`
}
