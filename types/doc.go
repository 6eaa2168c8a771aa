// 版权所有 2024 callkit Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package types 提供 callkit 全局共享的基础类型。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 llm、llm/speech、
llm/providers 与 config 等上层模块提供统一的类型契约。

# 核心类型

  - Enum / Member：封闭枚举（模型、声音选择器），Normalize 将字符串或枚举成员
    规范化为枚举值
  - Error / ErrorCode：结构化错误体系，含 HTTP 状态码、Retryable、Provider 标记
  - Result / Go：单次异步调用的结果通道

# 选择器规范化

调用方既可以传入枚举取值（如 speech.DeepgramVoice("arcas")），也可以传入
大小写不敏感的成员名称（如 "arcas"、"Nova_2"）。无法匹配时返回
ErrInvalidArgument，错误信息中列出全部合法名称。
*/
package types
