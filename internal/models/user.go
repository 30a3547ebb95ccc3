package models

// User represents a registered account.
type User struct {
	UserID   uint   `json:"user_id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	FullName string `json:"full_name" gorm:"not null"`
	Age      int    `json:"age" gorm:"not null"`
	Gender   string `json:"gender" gorm:"not null"`
}

// TableName pins the table name used by GORM.
func (User) TableName() string {
	return "users"
}
