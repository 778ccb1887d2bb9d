package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Interview InterviewConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type InterviewConfig struct {
	QuestionCount int
	Rubric        RubricWeights
}

// RubricWeights are the per-criterion point weights rendered into the evaluation
// prompt. They should sum to 100.
type RubricWeights struct {
	Technical      int
	Clarity        int
	Relevance      int
	ProblemSolving int
	Communication  int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Interview: InterviewConfig{
			QuestionCount: getEnvAsInt("QUESTION_COUNT", 20),
			Rubric: RubricWeights{
				Technical:      getEnvAsInt("RUBRIC_TECHNICAL", 30),
				Clarity:        getEnvAsInt("RUBRIC_CLARITY", 20),
				Relevance:      getEnvAsInt("RUBRIC_RELEVANCE", 20),
				ProblemSolving: getEnvAsInt("RUBRIC_PROBLEM_SOLVING", 20),
				Communication:  getEnvAsInt("RUBRIC_COMMUNICATION", 10),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
