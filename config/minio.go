package config

type MinioConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
	PublicURL string `json:"public_url" yaml:"public_url"`
}

func ProvideMinioConfig(cfg *Config) *MinioConfig {
	return cfg.Minio
}
