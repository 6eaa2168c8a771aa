// Package httpclient 构造服务商共用的出站 HTTP 客户端：
// TLS 1.2+、仅 AEAD 密码套件、固定 User-Agent 与按服务商设置的超时。
package httpclient
