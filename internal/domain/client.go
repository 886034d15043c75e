package domain

// Client is a purchaser. Orders reference it by ClientID.
type Client struct {
	ID    uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name  string `gorm:"column:name;not null;index" json:"name"`
	Email string `gorm:"column:email;not null;default:''" json:"email"`
}

func (Client) TableName() string { return "clients" }
