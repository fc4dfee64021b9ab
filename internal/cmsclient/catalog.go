package cmsclient

import "github.com/sectioncms/internal/content"

const (
	PathHeroBanners = "/api/cms/home/hero-banners"
	PathCoreValues  = "/api/cms/about/core-values"
	PathLeadership  = "/api/cms/about/leadership"
	PathStatBlocks  = "/api/cms/investors/stat-blocks"
	PathCommittees  = "/api/cms/investors/committees"
	PathRegulations = "/api/cms/investors/regulations"
	PathStockQuote  = "/api/cms/investors/stock-quote"
)

func (c *Client) HeroBanners() *Resource[content.HeroBanner] {
	return NewResource[content.HeroBanner](c, PathHeroBanners)
}

func (c *Client) CoreValues() *Resource[content.CoreValue] {
	return NewResource[content.CoreValue](c, PathCoreValues)
}

func (c *Client) Leadership() *Resource[content.LeadershipBio] {
	return NewResource[content.LeadershipBio](c, PathLeadership)
}

func (c *Client) StatBlocks() *Resource[content.StatBlock] {
	return NewResource[content.StatBlock](c, PathStatBlocks)
}

func (c *Client) Committees() *Resource[content.Committee] {
	return NewResource[content.Committee](c, PathCommittees)
}

func (c *Client) Regulations() *Resource[content.Regulation] {
	return NewResource[content.Regulation](c, PathRegulations)
}

func (c *Client) StockQuote() *SingletonResource[content.StockQuote] {
	return NewSingletonResource[content.StockQuote](c, PathStockQuote)
}
