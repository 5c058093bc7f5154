package model

import "time"

// ConsoleToken 控制台 token 表
type ConsoleToken struct {
	Token       string    `gorm:"primaryKey;type:text;column:token" json:"token"`
	InstanceID  string    `gorm:"type:text;not null;index:idx_console_tokens_instance_id;column:instance_id" json:"instance_id"`
	ConsoleType string    `gorm:"type:text;not null;column:console_type" json:"console_type"`
	Protocol    string    `gorm:"type:text;not null;column:protocol" json:"protocol"`
	Network     string    `gorm:"type:text;not null;column:network" json:"network"` // unix, tcp, pty
	Target      string    `gorm:"type:text;not null;column:target" json:"target"`
	ExpiresAt   time.Time `gorm:"type:datetime;not null;index:idx_console_tokens_expires_at;column:expires_at" json:"expires_at"`
	CreatedAt   time.Time `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
}

// TableName 指定表名
func (ConsoleToken) TableName() string {
	return "console_tokens"
}
