package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type StorageConfig struct {
	DataFile  string   `yaml:"data_file"`
	UploadDir string   `yaml:"upload_dir"`
	Provider  string   `yaml:"provider"`
	S3        S3Config `yaml:"s3"`
}

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Admin   struct {
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// LoadConfig reads the YAML config and applies environment overrides. A
// missing config file is not fatal so bare checkouts and tests run on
// defaults.
func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: failed to read config file: %v", err)
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if v := os.Getenv("DATA_FILE"); v != "" {
		cfg.Storage.DataFile = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.Storage.UploadDir = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":5000"
	}
	if cfg.Storage.DataFile == "" {
		cfg.Storage.DataFile = "listings.json"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "./uploads"
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "local"
	}
	if cfg.Admin.Password == "" {
		cfg.Admin.Password = "admin123"
		log.Println("Warning: ADMIN_PASSWORD not set, using default")
	}

	return cfg
}
