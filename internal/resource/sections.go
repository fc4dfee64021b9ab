package resource

import (
	"github.com/sectioncms/internal/cmsclient"
	"github.com/sectioncms/internal/config"
	"github.com/sectioncms/internal/content"
	"github.com/sirupsen/logrus"
)

type (
	HeroBannerController = Controller[content.HeroBanner, *content.HeroBanner]
	CoreValueController  = Controller[content.CoreValue, *content.CoreValue]
	LeadershipController = Controller[content.LeadershipBio, *content.LeadershipBio]
	StatBlockController  = Controller[content.StatBlock, *content.StatBlock]
	CommitteeController  = Controller[content.Committee, *content.Committee]
	RegulationController = Controller[content.Regulation, *content.Regulation]
	StockQuoteController = Singleton[content.StockQuote, *content.StockQuote]
)

// Sections 汇总所有内容区块的控制器，共用同一个客户端与提示时长
type Sections struct {
	HeroBanners *HeroBannerController
	CoreValues  *CoreValueController
	Leadership  *LeadershipController
	StatBlocks  *StatBlockController
	Committees  *CommitteeController
	Regulations *RegulationController
	StockQuote  *StockQuoteController
}

// NewSections 根据客户端配置构造全部控制器，DemoMode 关闭时不回退到示例数据
func NewSections(client *cmsclient.Client, cfg config.ClientConfig, logger *logrus.Logger) *Sections {
	return &Sections{
		HeroBanners: NewController[content.HeroBanner, *content.HeroBanner](client.HeroBanners(),
			listOptions(cfg, logger, "hero banner", content.DemoHeroBanners)),
		CoreValues: NewController[content.CoreValue, *content.CoreValue](client.CoreValues(),
			listOptions(cfg, logger, "core value", content.DemoCoreValues)),
		Leadership: NewController[content.LeadershipBio, *content.LeadershipBio](client.Leadership(),
			listOptions(cfg, logger, "leadership bio", content.DemoLeadership)),
		StatBlocks: NewController[content.StatBlock, *content.StatBlock](client.StatBlocks(),
			listOptions(cfg, logger, "stat block", content.DemoStatBlocks)),
		Committees: NewController[content.Committee, *content.Committee](client.Committees(),
			listOptions(cfg, logger, "committee", content.DemoCommittees)),
		Regulations: NewController[content.Regulation, *content.Regulation](client.Regulations(),
			listOptions(cfg, logger, "regulation", content.DemoRegulations)),
		StockQuote: NewSingleton[content.StockQuote, *content.StockQuote](client.StockQuote(), SingletonOptions[content.StockQuote]{
			Name:     "stock quote settings",
			FlashTTL: cfg.FlashTTL,
			Fallback: demoValue(cfg, content.DemoStockQuote),
			Logger:   logger,
		}),
	}
}

func listOptions[T any](cfg config.ClientConfig, logger *logrus.Logger, name string, demo func() []T) Options[T] {
	opts := Options[T]{Name: name, FlashTTL: cfg.FlashTTL, Logger: logger}
	if cfg.DemoMode {
		opts.Fallback = demo
	}
	return opts
}

func demoValue[T any](cfg config.ClientConfig, demo func() T) func() T {
	if !cfg.DemoMode {
		return nil
	}
	return demo
}
