package config

type LogRotationConfig struct {
	MaxSize    int  `json:"max_size" yaml:"max_size" mapstructure:"max_size"`
	MaxAge     int  `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
	MaxBackups int  `json:"max_backups" yaml:"max_backups" mapstructure:"max_backups"`
	LocalTime  bool `json:"local_time" yaml:"local_time" mapstructure:"local_time"`
	Compress   bool `json:"compress" yaml:"compress" mapstructure:"compress"`
}

type LogConfig struct {
	// stderr, stdout, none, file (logs/ddns.log) or a file path
	Output   string             `json:"output" yaml:"output" mapstructure:"output"`
	Level    string             `json:"level" yaml:"level" mapstructure:"level"`
	Format   string             `json:"format" yaml:"format" mapstructure:"format"`
	Rotation *LogRotationConfig `json:"rotation,omitempty" yaml:"rotation,omitempty" mapstructure:"rotation"`
}
