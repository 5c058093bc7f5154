// Package service 提供控制台服务依赖的实例解析、控制台获取和 token 管理
package service

import (
	"time"

	"github.com/jimyag/jvc/internal/jvc/entity"
	"github.com/jimyag/jvc/internal/jvc/repository/model"
	"github.com/jinzhu/copier"
)

// timeConverters entity 使用 RFC3339 字符串，model 使用 time.Time
var timeConverters = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				t := src.(time.Time)
				if t.IsZero() {
					return "", nil
				}
				return t.Format(time.RFC3339), nil
			},
		},
		{
			SrcType: copier.String,
			DstType: time.Time{},
			Fn: func(src interface{}) (interface{}, error) {
				s := src.(string)
				if s == "" {
					return time.Time{}, nil
				}
				return time.Parse(time.RFC3339, s)
			},
		},
	},
}

// instanceModelToEntity 将 model.Instance 转换为 entity.Instance
func instanceModelToEntity(m *model.Instance) (*entity.Instance, error) {
	e := &entity.Instance{}
	if err := copier.CopyWithOption(e, m, timeConverters); err != nil {
		return nil, err
	}
	return e, nil
}

// instanceEntityToModel 将 entity.Instance 转换为 model.Instance
func instanceEntityToModel(e *entity.Instance) (*model.Instance, error) {
	m := &model.Instance{}
	if err := copier.CopyWithOption(m, e, timeConverters); err != nil {
		return nil, err
	}
	return m, nil
}

// tokenEntityToModel 将 entity.ConsoleToken 转换为 model.ConsoleToken
func tokenEntityToModel(e *entity.ConsoleToken) (*model.ConsoleToken, error) {
	m := &model.ConsoleToken{}
	if err := copier.Copy(m, e); err != nil {
		return nil, err
	}
	m.Protocol = string(e.Protocol)
	return m, nil
}

// tokenModelToEntity 将 model.ConsoleToken 转换为 entity.ConsoleToken
func tokenModelToEntity(m *model.ConsoleToken) (*entity.ConsoleToken, error) {
	e := &entity.ConsoleToken{}
	if err := copier.Copy(e, m); err != nil {
		return nil, err
	}
	e.Protocol = entity.ConsoleProtocol(m.Protocol)
	return e, nil
}
