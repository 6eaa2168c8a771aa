// Package factory 提供聊天、TTS 与 STT 服务商的集中式工厂，
// 通过名称映射创建实例，未知名称返回 PROVIDER_NOT_FOUND。
package factory
