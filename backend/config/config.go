package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string

	RedisAddr     string
	RedisPassword string

	SendgridAPIKey string
	EmailFrom      string
	EmailFromName  string
	FrontendURL    string

	// manual | auto_email | auto_email_and_level1 | hybrid
	ReferralActivationPolicy string
	ReferralCodePrefix       string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "godcares")
	viper.SetDefault("JWT_SECRET", "secret")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("EMAIL_FROM", "no-reply@godcares365.org")
	viper.SetDefault("EMAIL_FROM_NAME", "God Cares 365")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("REFERRAL_ACTIVATION_POLICY", "hybrid")
	viper.SetDefault("REFERRAL_CODE_PREFIX", "GC365-")

	return &Config{
		ServerPort:               viper.GetString("SERVER_PORT"),
		DBDriver:                 viper.GetString("DB_DRIVER"),
		DBHost:                   viper.GetString("DB_HOST"),
		DBPort:                   viper.GetString("DB_PORT"),
		DBUser:                   viper.GetString("DB_USER"),
		DBPassword:               viper.GetString("DB_PASSWORD"),
		DBName:                   viper.GetString("DB_NAME"),
		JWTSecret:                viper.GetString("JWT_SECRET"),
		RedisAddr:                viper.GetString("REDIS_ADDR"),
		RedisPassword:            viper.GetString("REDIS_PASSWORD"),
		SendgridAPIKey:           viper.GetString("SENDGRID_API_KEY"),
		EmailFrom:                viper.GetString("EMAIL_FROM"),
		EmailFromName:            viper.GetString("EMAIL_FROM_NAME"),
		FrontendURL:              viper.GetString("FRONTEND_URL"),
		ReferralActivationPolicy: viper.GetString("REFERRAL_ACTIVATION_POLICY"),
		ReferralCodePrefix:       viper.GetString("REFERRAL_CODE_PREFIX"),
	}, nil
}
