package model

import (
	"time"

	"gorm.io/gorm"
)

// Instance 实例索引表，数据来自 libvirt 同步
type Instance struct {
	ID         string         `gorm:"primaryKey;type:text;column:id" json:"id"`                               // 与 libvirt domain 名称一致
	Name       string         `gorm:"type:text;not null;column:name" json:"name"`                             // 实例名称
	State      string         `gorm:"type:text;not null;index:idx_instances_state;column:state" json:"state"` // running, stopped, paused ...
	DomainUUID string         `gorm:"type:text;index:idx_instances_domain_uuid;column:domain_uuid" json:"domain_uuid"`
	DomainName string         `gorm:"type:text;column:domain_name" json:"domain_name"`
	CreatedAt  time.Time      `gorm:"type:datetime;not null;column:created_at" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"type:datetime;not null;column:updated_at" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"type:datetime;index:idx_instances_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Instance) TableName() string {
	return "instances"
}
