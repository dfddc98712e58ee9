package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string // archive location for question uploads

	// Exam settings (PSI-style: 24 questions, 45 minutes, pass at 18)
	ExamSize        int
	ExamDurationSec int
	ExamPassMark    int

	AdminUser     string
	AdminPassHash string // bcrypt
	AuthSecret    string // HMAC for staff JWTs
	SessionSecret string // signs the sid cookie

	// TTS (OpenAI speech API)
	OpenAIAPIKey string
	TTSModel     string
	TTSVoice     string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),

		ExamSize:        envInt("EXAM_QUESTION_COUNT", 24),
		ExamDurationSec: envInt("EXAM_DURATION_SECONDS", 45*60),
		ExamPassMark:    envInt("EXAM_PASS_MARK", 18),

		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SessionSecret: envOr("SESSION_SECRET", "supersecret-session-key"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		TTSModel:     envOr("TTS_MODEL", "tts-1"),
		TTSVoice:     envOr("TTS_VOICE", "alloy"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://quiz.lifeprep.uk"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil && v > 0 {
		return v
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
