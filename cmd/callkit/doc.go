/*
Package main 提供 callkit 命令行程序入口。

# 概述

cmd/callkit 用同一份配置驱动聊天、语音合成与语音识别，
子命令包括 chat、speak、transcribe、voices、models、version。
配置按 -config 指定的 YAML/TOML 文件、-env 指定的 .env 文件、
CALLKIT_ 前缀环境变量的顺序叠加，服务商密钥也可直接使用
OPENAI_API_KEY、DEEPGRAM_API_KEY、ELEVENLABS_API_KEY。

# 主要能力

  - speak 接受逗号分隔的多个服务商，使用 errgroup 并发合成，
    输出文件名按服务商区分
  - -async 切换到异步 API（结果通道 + types.Await）
  - 日志按 log 配置构建 zap logger，telemetry 启用时初始化 OTLP 导出
  - 构建注入：Version、BuildTime、GitCommit 通过 ldflags 设置
*/
package main
