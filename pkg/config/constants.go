package config

import "time"

const (
	EnvAzureOpenAIApiKey     = "AZURE_OPENAI_API_KEY"
	EnvAzureOpenAIEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvAzureOpenAIDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvAzureSpeechKey        = "AZURE_SPEECH_KEY"
	EnvAzureSpeechEndpoint   = "AZURE_SPEECH_ENDPOINT"
	EnvElevenLabsApiKey      = "ELEVENLABS_API_KEY"
	EnvGoogleApiKey          = "GOOGLE_API_KEY"
	EnvConfigFile            = "TUTOR_CONFIG_FILE"

	DefaultConfigFile = "config.yaml"
	DefaultEnvFile    = ".env"

	CompletionProviderAzureOpenAI = "azure_openai"
	CompletionProviderGoogle      = "google"
	SynthesisProviderElevenLabs   = "elevenlabs"
	SynthesisProviderAzure        = "azure"

	DefaultRecognitionLanguage   = "ar-EG"
	DefaultAzureOpenAIApiVersion = "2024-06-01"
	DefaultTemperature           = 0.7
	DefaultMaxTokens             = 1000
	DefaultCompletionTimeout     = 60 * time.Second
	DefaultGoogleModel           = "gemini-2.0-flash"

	// Hoda
	DefaultElevenLabsVoiceId      = "meAbY2VpJkt1q46qk56T"
	DefaultElevenLabsModelId      = "eleven_multilingual_v2"
	DefaultElevenLabsOutputFormat = "pcm_24000"
	DefaultAzureVoice             = "ar-EG-SalmaNeural"

	DefaultTurnSubject = "tutor.turns"
)

// DefaultPersona asks the model to act as an Egyptian Arabic conversation
// partner and to write with diacritics so learners can read the replies.
const DefaultPersona = `
انتي مُساعدة افتراضية.
انتي بتساعدي الناس اللى عايزين يمارسوا عربي.
انتي دايماً بتتكلمي بالبهجة المصرية.

بتكتبي تشكيل في الكتابة عشان تسهلي على الناس القراءة.
مثلاً: اللَهجة المَصريّة
    `
