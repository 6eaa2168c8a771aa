/*
包 speech 提供统一的语音合成 (TTS) 与语音识别 (STT) 接入层。

# 核心接口

  - TTSProvider：Synthesize、SynthesizeAsync、SynthesizeToFile、ListVoices
  - STTProvider：Transcribe、TranscribeFile 及对应的 Async 版本
  - TTSRequest / TTSResponse、STTRequest / STTResponse：标准化请求与响应

# 服务商

  - DeepgramTTSProvider：Aura 声音，/v1/speak
  - ElevenLabsProvider：20 个预置声音，/v1/text-to-speech/<voice_id>/stream
  - OpenAITTSProvider：tts-1 / tts-1-hd，/v1/audio/speech
  - DeepgramSTTProvider：/v1/listen，智能格式化

每个服务商都暴露纯函数的 Build*Payload 与 Params，可在不访问网络的情况下
检查将要发出的请求。声音与模型均为封闭枚举，字符串按成员名称大小写不敏感匹配。
*/
package speech
