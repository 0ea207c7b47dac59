package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/dongjinrnd-jpg/Worklog/internal/config"
	"github.com/dongjinrnd-jpg/Worklog/internal/server"
)

var (
	port    = flag.Int("port", 0, "서비스 포트 (config.toml 에 port 가 명시돼 있으면 무시)")
	devMode = flag.Bool("dev", false, "개발 모드")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Worklog - 업무일지 / 프로젝트 관리")
	fmt.Println("==========================================")

	// 설정 로드
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Warnf("설정 로드 실패, 기본 설정 사용: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 명령행 인자가 설정 파일보다 우선하지 않도록 처리
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Server.DevMode {
		log.SetLevel(log.DebugLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("설정 오류: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("서버 초기화 실패: %v", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	go func() {
		log.Infof("서비스 시작, 포트 %d ...", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("서비스 시작 실패: %v", err)
		}
	}()

	fmt.Printf("http://localhost:%d\n", cfg.Server.Port)
	fmt.Println("\nCtrl+C 로 종료...")

	// 종료 신호 대기
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n서비스를 종료합니다")
}
