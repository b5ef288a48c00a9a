package config

import "fmt"

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PricingConfig carries the base unit prices the pricing engine is built
// from. Prices are MAD per item before any plan multiplier is applied.
type PricingConfig struct {
	MainMealPrice  float64 `mapstructure:"main_meal_price"`
	BreakfastPrice float64 `mapstructure:"breakfast_price"`
	SnackPrice     float64 `mapstructure:"snack_price"`
}

// SchedulingConfig carries the delivery calendar knobs.
type SchedulingConfig struct {
	HorizonDays       int   `mapstructure:"horizon_days"`
	PauseMenuDays     []int `mapstructure:"pause_menu_days"`
	PauseNoticeHours  int   `mapstructure:"pause_notice_hours"`
	ResumeNoticeHours int   `mapstructure:"resume_notice_hours"`
}
