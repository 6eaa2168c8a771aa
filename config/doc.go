// Package config 提供 callkit 的配置管理功能。
//
// 配置按 默认值 → YAML/TOML 文件 → .env 文件 → 前缀环境变量 的顺序叠加，
// 随后回退到服务商惯用的密钥变量（OPENAI_API_KEY 等），
// 最后经 validator 结构体标签与自定义验证器校验。
package config
