package content

// 后端不可用时展示的示例内容，ID 为 0 表示尚未保存

func DemoHeroBanners() []HeroBanner {
	return []HeroBanner{
		{Base: Base{Order: 0, IsActive: true}, Page: "home", Title: "Building what matters", Subtitle: "Engineering solutions for a changing world", CTAText: "Learn more", CTALink: "/about"},
	}
}

func DemoCoreValues() []CoreValue {
	return []CoreValue{
		{Base: Base{Order: 0, IsActive: true}, Title: "Integrity", Description: "We do what we say.", Icon: "shield"},
		{Base: Base{Order: 1, IsActive: true}, Title: "Innovation", Description: "We keep improving.", Icon: "lightbulb"},
		{Base: Base{Order: 2, IsActive: true}, Title: "Responsibility", Description: "We care for people and planet.", Icon: "leaf"},
	}
}

func DemoLeadership() []LeadershipBio {
	return []LeadershipBio{
		{Base: Base{Order: 0, IsActive: true}, Name: "Chief Executive Officer", Position: "CEO", Bio: "Leadership profile coming soon."},
	}
}

func DemoStatBlocks() []StatBlock {
	return []StatBlock{
		{Base: Base{Order: 0, IsActive: true}, Label: "Years of operation", Value: "25", Suffix: "+"},
		{Base: Base{Order: 1, IsActive: true}, Label: "Countries", Value: "12"},
		{Base: Base{Order: 2, IsActive: true}, Label: "Employees", Value: "3,000", Suffix: "+"},
	}
}

func DemoCommittees() []Committee {
	return []Committee{
		{
			Base: Base{Order: 0, IsActive: true},
			Name: "Audit Committee",
			Members: []CommitteeMember{
				{Name: "Committee Chair", Role: "Chair", Order: 0},
				{Name: "Independent Director", Role: "Member", Order: 1},
			},
		},
	}
}

func DemoRegulations() []Regulation {
	return []Regulation{}
}

func DemoStockQuote() StockQuote {
	return StockQuote{Currency: "USD", RefreshSeconds: 60, ShowChart: true}
}
