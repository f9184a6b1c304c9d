package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the API.
type Config struct {
	MongoURL            string // MongoDB connection URI
	DBName              string // MongoDB database name
	JWTSecret           string // JWT secret for authentication
	SMTPHost            string // SMTP host for sending mail
	SMTPPort            string // SMTP port
	SMTPEmail           string // SMTP email for sending mail
	SMTPPassword        string // SMTP password for sending mail
	StripeSecretKey     string // Stripe API secret key
	StripeSuccessURL    string // Redirect after successful payment
	StripeCancelURL     string // Redirect after cancelled payment
	CloudinaryCloudName string // Cloudinary cloud name
	CloudinaryAPIKey    string // Cloudinary API key
	CloudinaryAPISecret string // Cloudinary API secret
	CloudinaryFolder    string // Cloudinary upload folder
	RedisURL            string // Redis connection URL (optional, cache disabled if empty)
	Port                string // Service port (default: 8080)
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		MongoURL:            os.Getenv("MONGO_URL"),
		DBName:              os.Getenv("DB_NAME"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            os.Getenv("SMTP_PORT"),
		SMTPEmail:           os.Getenv("SMTP_EMAIL"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeSuccessURL:    os.Getenv("STRIPE_SUCCESS_URL"),
		StripeCancelURL:     os.Getenv("STRIPE_CANCEL_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    os.Getenv("CLOUDINARY_FOLDER"),
		RedisURL:            os.Getenv("REDIS_URL"),
		Port:                os.Getenv("PORT"),
	}

	if cfg.DBName == "" {
		cfg.DBName = "farmlink"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	// Validate required fields
	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SMTPEmail == "" {
		return nil, fmt.Errorf("SMTP_EMAIL is required")
	}
	if cfg.SMTPPassword == "" {
		return nil, fmt.Errorf("SMTP_PASSWORD is required")
	}
	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if cfg.CloudinaryCloudName == "" {
		return nil, fmt.Errorf("CLOUDINARY_CLOUD_NAME is required")
	}
	if cfg.CloudinaryAPIKey == "" {
		return nil, fmt.Errorf("CLOUDINARY_API_KEY is required")
	}
	if cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("CLOUDINARY_API_SECRET is required")
	}

	return cfg, nil
}
