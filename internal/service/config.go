// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig holds the subset of AppConfig the services read
// ServiceConfig 服务层从 AppConfig 中读取的配置子集
type ServiceConfig struct {
	User UserServiceConfig
	Note NoteServiceConfig
}

// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool
}

// NoteServiceConfig note service configuration
type NoteServiceConfig struct {
	// HistoryUpsertTimeout bounds each background UpsertOnAccess (e.g. 10s, 1m)
	// 后台 UpsertOnAccess 的超时时间
	HistoryUpsertTimeout string
}
