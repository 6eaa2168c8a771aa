// 版权所有 2024 callkit Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的服务商调用指标采集能力。

# 概述

Collector 逐个注册到调用方提供的 Registerer，所有指标按 namespace 隔离，
同一注册表上重复创建时复用已注册的向量；Handler 以 promhttp 暴露采集结果。

# 主要能力

  - 调用指标：调用总数、调用耗时、响应体大小，
    按 provider/operation 分组，状态码归类为 2xx/3xx/4xx/5xx/error。
  - 语音合成指标：输入字符数、输出音频字节数，按 provider/model 分组。
  - LLM 指标：Token 用量（prompt/completion），按 provider/model 分组。
*/
package metrics
