// Package entity 定义业务实体
package entity

// Instance 实例信息
// 控制台服务只读取实例，实例的生命周期由 libvirt 管理
type Instance struct {
	ID         string `json:"id"`          // Instance ID，与 libvirt domain 名称一致
	Name       string `json:"name"`        // 实例名称
	State      string `json:"state"`       // 同步时观察到的状态：running, stopped, paused ...
	DomainUUID string `json:"domain_uuid"` // Libvirt Domain UUID
	DomainName string `json:"domain_name"` // Libvirt Domain 名称
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
