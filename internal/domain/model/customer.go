package model

import "time"

// Userと1:1の顧客情報
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);index" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	City      string    `gorm:"type:varchar(100)" json:"city"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 配送先のスナップショット文字列
func (c Customer) ShippingAddress() string {
	switch {
	case c.Address == "":
		return c.City
	case c.City == "":
		return c.Address
	}
	return c.Address + ", " + c.City
}
