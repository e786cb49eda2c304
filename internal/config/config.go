package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Logger struct {
	Level string `yaml:"level"`
}

type Global struct {
	Logger Logger `yaml:"logger"`
}

type LocalRepository struct {
	Path string `yaml:"path"`
}

type S3Repository struct {
	Bucket         string `yaml:"bucket"`
	Region         string `yaml:"region"`
	Prefix         string `yaml:"prefix"`
	Endpoint       string `yaml:"endpoint"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

type Repository struct {
	Type        string          `yaml:"type"`
	LocalConfig LocalRepository `yaml:"local"`
	S3Config    S3Repository    `yaml:"s3"`
}

type Converter struct {
	// Catalog selects the pipeline: "fsbc" or "gesn".
	Catalog    string     `yaml:"catalog"`
	Source     string     `yaml:"source"`
	Output     string     `yaml:"output"`
	Title      string     `yaml:"title"`
	Repository Repository `yaml:"repository"`
}

type Config struct {
	Global    Global    `yaml:"global"`
	Converter Converter `yaml:"converter"`
}

func NewFromFile(fpath string) (*Config, error) {
	bs, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, err
	}

	return &c, nil
}
