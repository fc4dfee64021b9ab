package main

import (
	"fmt"

	"github.com/sectioncms/internal/config"
	"github.com/sectioncms/internal/db"
	"github.com/sectioncms/internal/logging"
	"github.com/sectioncms/internal/service"
	"github.com/sirupsen/logrus"
)

// 把示例内容写入空的内容表，方便本地调试管理端
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("配置加载失败: %v", err)
	}
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("日志初始化失败: %v", err)
	}

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.WithError(err).Fatal("数据库初始化失败")
	}

	report, err := seed(service.NewSections(db.DB), service.NewStockQuoteService(db.DB))
	if err != nil {
		logger.WithError(err).Fatal("示例数据写入失败")
	}

	for _, line := range report {
		fmt.Println(line)
	}
	fmt.Println("示例数据生成完成！")
}
