// Copyright 2026 callkit Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

包 openai 提供 OpenAI Chat Completions 的 Provider 实现。

# 核心结构体

  - Provider — 实现 llm.Provider，单轮对话（system + user 两条消息）
  - Config — 嵌入 providers.BaseProviderConfig，附加 Organization、
    默认模型、默认温度与系统提示词

# 请求构建

BuildPayload 是纯函数：根据 ChatParams 生成 POST
<base>/v1/chat/completions 的请求载荷，不做任何网络访问。
响应取 choices[0].message.content，choices 为空时返回 DECODE_ERROR。
*/
package openai
