// Package callkit provides one client for the chat, text-to-speech and
// speech-to-text vendors used to build voice call agents.
//
// Usage:
//
//	cfg, err := config.NewLoader().WithDotEnv(".env").Load()
//	client, err := callkit.New(cfg, logger)
//
//	chat, _ := client.LLM("")           // defaults.chat
//	text, err := llm.ChatText(ctx, chat, "What is the black box problem?")
//
//	tts, _ := client.TTS("elevenlabs")
//	err = tts.SynthesizeToFile(ctx, &speech.TTSRequest{Text: text, Voice: "ROGER"}, "output.mp3")
//
//	stt, _ := client.STT("")
//	resp, err := stt.TranscribeFile(ctx, "output.mp3", &speech.STTRequest{Model: "ENHANCED"})
//
// Every provider call performs exactly one HTTP request. Failures are
// *types.Error values carrying a stable code and a retryable hint; callkit
// never retries on its own.
package callkit
