package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/sectioncms/internal/content"
	"github.com/sectioncms/internal/service"
)

// seed 只填充空表，已有内容的区块会被跳过，返回每个区块的处理结果
func seed(sections *service.Sections, stockQuote *service.StockQuoteService) ([]string, error) {
	var report []string

	steps := []func() (string, error){
		func() (string, error) {
			return seedSection(sections.HeroBanners, content.DemoHeroBanners())
		},
		func() (string, error) {
			return seedSection(sections.CoreValues, content.DemoCoreValues())
		},
		func() (string, error) {
			return seedSection(sections.Leadership, content.DemoLeadership())
		},
		func() (string, error) {
			return seedSection(sections.StatBlocks, content.DemoStatBlocks())
		},
		func() (string, error) {
			return seedSection(sections.Committees, content.DemoCommittees())
		},
		func() (string, error) {
			return seedSection(sections.Regulations, content.DemoRegulations())
		},
	}

	for _, step := range steps {
		line, err := step()
		if err != nil {
			return report, err
		}
		report = append(report, line)
	}

	line, err := seedStockQuote(stockQuote)
	if err != nil {
		return report, err
	}
	return append(report, line), nil
}

func seedSection[T any, P interface {
	*T
	service.Record
}, D any](svc *service.SectionService[T, P], demo []D) (string, error) {
	existing, err := svc.List(true)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return fmt.Sprintf("%s: 已有 %d 条，跳过", svc.Name(), len(existing)), nil
	}

	for _, item := range demo {
		var record T
		if err := convert(item, &record); err != nil {
			return "", eris.Wrapf(err, "convert %s", svc.Name())
		}
		if _, err := svc.Create(&record, false); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%s: 写入 %d 条", svc.Name(), len(demo)), nil
}

func seedStockQuote(svc *service.StockQuoteService) (string, error) {
	current, err := svc.Get()
	if err != nil {
		return "", err
	}
	if current.Symbol != "" {
		return "stock quote: 已配置，跳过", nil
	}

	demo := content.DemoStockQuote()
	if _, err := svc.Update(service.StockQuoteInput{
		Symbol:         "DEMO",
		Exchange:       "NYSE",
		Currency:       demo.Currency,
		RefreshSeconds: demo.RefreshSeconds,
		ShowChart:      demo.ShowChart,
		ShowVolume:     demo.ShowVolume,
	}); err != nil {
		return "", err
	}
	return "stock quote: 写入示例设置（未启用）", nil
}

// convert 依赖 content 与 db 两侧一致的 JSON 字段名
func convert(src any, dst any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}
