// 版权所有 2024 callkit Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 llm 定义单轮聊天补全的统一请求、响应与 Provider 契约。

# 概述

调用方以 [ChatRequest] 描述一次单轮对话：用户文本、模型选择器、温度与
系统提示词。具体服务商（见 llm/providers/openai）负责把请求构建为
HTTP 载荷、执行一次调用并把响应还原为 [ChatResponse]。

# 核心接口

  - [Provider]：Name / Models / Chat / ChatAsync
  - [ChatText]：只关心回复文本时的便捷函数

# 同步与异步

每个操作同时提供同步与异步形式。异步形式返回 types.Result 通道，
结果恰好投递一次后通道关闭，可与 types.Await 配合使用。
*/
package llm
