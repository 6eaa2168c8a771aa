// Copyright 2026 callkit Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 providers 提供各服务商共用的请求管线：payload 构建产物、单次 HTTP 调用
执行器以及错误映射。具体服务商（openai、llm/speech 下的 deepgram、
elevenlabs 等）只负责构建 Payload 与解析响应，HTTP 调用统一交给 Invoker。

# 核心类型

  - Payload：端点 URL、请求头与请求体三元组，由纯函数构建器产出
  - Invoker：对每个 Payload 恰好执行一次请求，按块读取并拼接响应体
  - Call：调用描述（provider/operation/model），用于日志、span 与指标标签
  - Recorder：调用级指标接口，由 internal/metrics.Collector 与 internal/telemetry.Recorder 实现
  - BaseProviderConfig：服务商共享的基础配置（APIKey、BaseURL、Timeout）

# 核心函数

  - MapHTTPError：将 HTTP 状态码映射为语义化的 types.Error（含 Retryable 标记）
  - ReadErrorMessage：从 OpenAI / Deepgram / ElevenLabs 风格的错误体中提取消息
  - JSONPayload：以确定性 JSON 编码构造请求载荷
  - DecodeJSON：解码响应，失败时返回 DECODE_ERROR
  - Recorders：把多个 Recorder 合并为一个

# 可观测性

Invoker 为每次调用生成 uuid 调用 ID，写入 zap 日志字段并开启名为
callkit.<provider>.<operation> 的 OpenTelemetry span。不做任何重试。
*/
package providers
