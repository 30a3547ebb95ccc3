package models

// DataEntry is one key-value record.
type DataEntry struct {
	DataID uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	Key    string `json:"key" gorm:"uniqueIndex;not null"`
	Value  string `json:"value" gorm:"not null"`
}

// TableName pins the table name used by GORM.
func (DataEntry) TableName() string {
	return "datas"
}
