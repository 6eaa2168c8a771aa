// Package telemetry 初始化 OpenTelemetry SDK，为服务商调用导出 span，
// 并通过 Recorder 把调用次数、耗时、合成字符数与 Token 用量写入 OTLP 指标。
// 遥测关闭时保持 noop，不连接任何外部服务。
package telemetry
