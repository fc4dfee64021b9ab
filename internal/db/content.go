package db

// HeroBanner 首页或栏目页顶部的主视觉横幅
// Page 标记横幅所属页面，例如 home、about、investors
type HeroBanner struct {
	Model
	Ordering
	Page     string `gorm:"size:50;index" json:"page"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Subtitle string `gorm:"size:500" json:"subtitle"`
	ImageURL string `gorm:"size:500" json:"imageUrl"`
	CTAText  string `gorm:"size:80" json:"ctaText"`
	CTALink  string `gorm:"size:500" json:"ctaLink"`
}

// TableName 返回自定义表名
func (HeroBanner) TableName() string {
	return "hero_banners"
}

// CoreValue 关于我们页面的核心价值观条目
type CoreValue struct {
	Model
	Ordering
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
}

// TableName 返回自定义表名
func (CoreValue) TableName() string {
	return "core_values"
}

// LeadershipBio 管理层成员简介，Bio 为 Markdown 原文，BioHTML 由服务端渲染并过滤
type LeadershipBio struct {
	Model
	Ordering
	Name     string `gorm:"size:120;not null" json:"name"`
	Position string `gorm:"size:200;not null" json:"position"`
	Bio      string `gorm:"type:text" json:"bio"`
	BioHTML  string `gorm:"type:text" json:"bioHtml"`
	ImageURL string `gorm:"size:500" json:"imageUrl"`
}

// TableName 返回自定义表名
func (LeadershipBio) TableName() string {
	return "leadership_bios"
}

// StatBlock 投资者关系页的关键数据块，例如 "营收 | 12.5 | 亿元"
type StatBlock struct {
	Model
	Ordering
	Label  string `gorm:"size:120;not null" json:"label"`
	Value  string `gorm:"size:60;not null" json:"value"`
	Suffix string `gorm:"size:30" json:"suffix"`
}

// TableName 返回自定义表名
func (StatBlock) TableName() string {
	return "stat_blocks"
}

// Committee 董事会下设委员会，成员随委员会整体保存
type Committee struct {
	Model
	Ordering
	Name        string            `gorm:"size:200;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Members     []CommitteeMember `gorm:"constraint:OnDelete:CASCADE" json:"members"`
}

// TableName 返回自定义表名
func (Committee) TableName() string {
	return "committees"
}

// CommitteeMember 委员会成员，SortOrder 只在所属委员会内有效
type CommitteeMember struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CommitteeID uint   `gorm:"index" json:"-"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Role        string `gorm:"size:120" json:"role"`
	SortOrder   int    `gorm:"default:0" json:"order"`
}

// TableName 返回自定义表名
func (CommitteeMember) TableName() string {
	return "committee_members"
}

// Regulation 监管文件，PDF 通过上传接口获得地址后再保存
// PublishedOn 使用 YYYY-MM-DD 格式
type Regulation struct {
	Model
	Ordering
	Title       string `gorm:"size:300;not null" json:"title"`
	Category    string `gorm:"size:80;index" json:"category"`
	PDFURL      string `gorm:"size:500;not null" json:"pdfUrl"`
	PublishedOn string `gorm:"size:10" json:"publishedOn"`
}

// TableName 返回自定义表名
func (Regulation) TableName() string {
	return "regulations"
}
