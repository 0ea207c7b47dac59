package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 애플리케이션 설정
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Google GoogleConfig `toml:"google"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// GoogleConfig Google Sheets 연동 설정
// 서비스 계정 이메일과 개인 키는 환경 변수로도 주입할 수 있다.
type GoogleConfig struct {
	ServiceAccountEmail string `toml:"service_account_email"`
	PrivateKey          string `toml:"private_key"`
	PrivateKeyFile      string `toml:"private_key_file"`
	SpreadsheetID       string `toml:"spreadsheet_id"`
}

// CacheConfig 엔티티별 캐시 TTL (초)
type CacheConfig struct {
	ProjectsTTL     int `toml:"projects_ttl"`
	ItemDataTTL     int `toml:"item_data_ttl"`
	ManagersTTL     int `toml:"managers_ttl"`
	DailyReportsTTL int `toml:"daily_reports_ttl"`
}

// LoadConfigInfo 설정 로드 메타 정보
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 기본 설정
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20537,
			DevMode: false,
		},
		Cache: CacheConfig{
			ProjectsTTL:     60,
			ItemDataTTL:     60,
			ManagersTTL:     3600,
			DailyReportsTTL: 60,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 실행 파일이 위치한 디렉터리
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo config.toml 로드 + 메타 정보 반환
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 실행 파일 경로를 알 수 없으면 현재 디렉터리 사용
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 설정 파일이 없으면 기본 설정 + 환경 변수만으로 동작
			applyEnvOverrides(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnvOverrides(config)

	return config, info, nil
}

// applyEnvOverrides 환경 변수 오버라이드
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"); v != "" {
		config.Google.ServiceAccountEmail = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY"); v != "" {
		// .env 류의 설정은 개행을 \n 으로 이스케이프해 담는 경우가 많다
		config.Google.PrivateKey = strings.ReplaceAll(v, `\n`, "\n")
	}
	if v := os.Getenv("GOOGLE_SPREADSHEET_ID"); v != "" {
		config.Google.SpreadsheetID = v
	}
	if v := os.Getenv("WORKLOG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
}

// LoadConfig config.toml 로드
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig config.toml 저장
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ResolvePrivateKey 개인 키 확정
// private_key 가 비어 있고 private_key_file 이 지정된 경우 파일에서 읽는다.
func (g *GoogleConfig) ResolvePrivateKey() (string, error) {
	if g.PrivateKey != "" {
		return g.PrivateKey, nil
	}
	if g.PrivateKeyFile == "" {
		return "", errors.New("private key not configured")
	}
	data, err := os.ReadFile(g.PrivateKeyFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Validate 필수 설정 검증
// 자격 증명이나 스프레드시트 ID 가 없으면 기동 시점에 바로 실패한다.
func (c *AppConfig) Validate() error {
	if c.Google.ServiceAccountEmail == "" {
		return errors.New("Google 서비스 계정 이메일이 설정되지 않았습니다 (GOOGLE_SERVICE_ACCOUNT_EMAIL)")
	}
	if c.Google.PrivateKey == "" && c.Google.PrivateKeyFile == "" {
		return errors.New("Google 서비스 계정 개인 키가 설정되지 않았습니다 (GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY)")
	}
	if c.Google.SpreadsheetID == "" {
		return errors.New("스프레드시트 ID가 설정되지 않았습니다 (GOOGLE_SPREADSHEET_ID)")
	}
	return nil
}

// TTL 헬퍼: 0 이하로 설정된 값은 기본값으로 되돌린다.
func ttlOrDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// ProjectsTTLOrDefault 프로젝트 캐시 TTL
func (c *CacheConfig) ProjectsTTLOrDefault() int { return ttlOrDefault(c.ProjectsTTL, 60) }

// ItemDataTTLOrDefault 항목정보 캐시 TTL
func (c *CacheConfig) ItemDataTTLOrDefault() int { return ttlOrDefault(c.ItemDataTTL, 60) }

// ManagersTTLOrDefault 담당자 캐시 TTL
func (c *CacheConfig) ManagersTTLOrDefault() int { return ttlOrDefault(c.ManagersTTL, 3600) }

// DailyReportsTTLOrDefault 업무일지 캐시 TTL
func (c *CacheConfig) DailyReportsTTLOrDefault() int { return ttlOrDefault(c.DailyReportsTTL, 60) }
