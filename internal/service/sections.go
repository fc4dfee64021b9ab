package service

import (
	"strings"

	"github.com/sectioncms/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	HeroBannerService = SectionService[db.HeroBanner, *db.HeroBanner]
	CoreValueService  = SectionService[db.CoreValue, *db.CoreValue]
	LeadershipService = SectionService[db.LeadershipBio, *db.LeadershipBio]
	StatBlockService  = SectionService[db.StatBlock, *db.StatBlock]
	CommitteeService  = SectionService[db.Committee, *db.Committee]
	RegulationService = SectionService[db.Regulation, *db.Regulation]
)

// Sections 汇总所有可排序内容区块的服务
type Sections struct {
	HeroBanners *HeroBannerService
	CoreValues  *CoreValueService
	Leadership  *LeadershipService
	StatBlocks  *StatBlockService
	Committees  *CommitteeService
	Regulations *RegulationService
}

// NewSections 使用同一个数据库连接构造全部内容服务
func NewSections(gdb *gorm.DB) *Sections {
	return &Sections{
		HeroBanners: NewHeroBannerService(gdb),
		CoreValues:  NewCoreValueService(gdb),
		Leadership:  NewLeadershipService(gdb),
		StatBlocks:  NewStatBlockService(gdb),
		Committees:  NewCommitteeService(gdb),
		Regulations: NewRegulationService(gdb),
	}
}

// NewHeroBannerService 构造横幅服务，未指定页面时归入 home
func NewHeroBannerService(gdb *gorm.DB) *HeroBannerService {
	return NewSectionService[db.HeroBanner](gdb, SectionSpec[db.HeroBanner]{
		Name: "hero banner",
		Normalize: func(item *db.HeroBanner) error {
			item.Page = strings.ToLower(plainText(item.Page))
			if item.Page == "" {
				item.Page = "home"
			}
			item.Title = plainText(item.Title)
			item.Subtitle = plainText(item.Subtitle)
			item.ImageURL = strings.TrimSpace(item.ImageURL)
			item.CTAText = plainText(item.CTAText)
			item.CTALink = strings.TrimSpace(item.CTALink)
			return nil
		},
		Validate: func(item *db.HeroBanner) error {
			if item.Title == "" {
				return requiredField("title")
			}
			if !validLink(item.ImageURL) {
				return invalidField("imageUrl", "must be an http(s) or site-relative URL")
			}
			if !validLink(item.CTALink) {
				return invalidField("ctaLink", "must be an http(s) or site-relative URL")
			}
			if item.CTAText != "" && item.CTALink == "" {
				return requiredField("ctaLink")
			}
			return nil
		},
	})
}

// NewCoreValueService 构造核心价值观服务
func NewCoreValueService(gdb *gorm.DB) *CoreValueService {
	return NewSectionService[db.CoreValue](gdb, SectionSpec[db.CoreValue]{
		Name: "core value",
		Normalize: func(item *db.CoreValue) error {
			item.Title = plainText(item.Title)
			item.Description = plainText(item.Description)
			item.Icon = strings.ToLower(strings.TrimSpace(item.Icon))
			return nil
		},
		Validate: func(item *db.CoreValue) error {
			if item.Title == "" {
				return requiredField("title")
			}
			return nil
		},
	})
}

// NewLeadershipService 构造管理层简介服务，保存时同步渲染 BioHTML
func NewLeadershipService(gdb *gorm.DB) *LeadershipService {
	return NewSectionService[db.LeadershipBio](gdb, SectionSpec[db.LeadershipBio]{
		Name: "leadership bio",
		Normalize: func(item *db.LeadershipBio) error {
			item.Name = plainText(item.Name)
			item.Position = plainText(item.Position)
			item.Bio = strings.TrimSpace(item.Bio)
			item.ImageURL = strings.TrimSpace(item.ImageURL)

			rendered, err := renderMarkdown(item.Bio)
			if err != nil {
				return invalidField("bio", "is not valid markdown")
			}
			item.BioHTML = rendered
			return nil
		},
		Validate: func(item *db.LeadershipBio) error {
			if item.Name == "" {
				return requiredField("name")
			}
			if item.Position == "" {
				return requiredField("position")
			}
			if !validLink(item.ImageURL) {
				return invalidField("imageUrl", "must be an http(s) or site-relative URL")
			}
			return nil
		},
	})
}

// NewStatBlockService 构造数据块服务
func NewStatBlockService(gdb *gorm.DB) *StatBlockService {
	return NewSectionService[db.StatBlock](gdb, SectionSpec[db.StatBlock]{
		Name: "stat block",
		Normalize: func(item *db.StatBlock) error {
			item.Label = plainText(item.Label)
			item.Value = plainText(item.Value)
			item.Suffix = plainText(item.Suffix)
			return nil
		},
		Validate: func(item *db.StatBlock) error {
			if item.Label == "" {
				return requiredField("label")
			}
			if item.Value == "" {
				return requiredField("value")
			}
			return nil
		},
	})
}

// NewCommitteeService 构造委员会服务，成员列表随委员会整体替换
func NewCommitteeService(gdb *gorm.DB) *CommitteeService {
	return NewSectionService[db.Committee](gdb, SectionSpec[db.Committee]{
		Name: "committee",
		Normalize: func(item *db.Committee) error {
			item.Name = plainText(item.Name)
			item.Description = plainText(item.Description)
			for i := range item.Members {
				item.Members[i].Name = plainText(item.Members[i].Name)
				item.Members[i].Role = plainText(item.Members[i].Role)
				if item.Members[i].SortOrder < 0 {
					item.Members[i].SortOrder = 0
				}
			}
			return nil
		},
		Validate: func(item *db.Committee) error {
			if item.Name == "" {
				return requiredField("name")
			}
			for _, member := range item.Members {
				if member.Name == "" {
					return requiredField("member name")
				}
			}
			return nil
		},
		Preload: func(query *gorm.DB) *gorm.DB {
			return query.Preload("Members", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("sort_order ASC").Order("id ASC")
			})
		},
		Persist: saveCommittee,
		Purge: func(tx *gorm.DB, id uint) error {
			return tx.Where("committee_id = ?", id).Delete(&db.CommitteeMember{}).Error
		},
	})
}

func saveCommittee(tx *gorm.DB, committee *db.Committee) error {
	members := committee.Members
	committee.Members = nil

	if err := tx.Omit(clause.Associations).Save(committee).Error; err != nil {
		return err
	}

	if err := tx.Where("committee_id = ?", committee.ID).Delete(&db.CommitteeMember{}).Error; err != nil {
		return err
	}

	for i := range members {
		members[i].ID = 0
		members[i].CommitteeID = committee.ID
	}
	if len(members) > 0 {
		if err := tx.Create(&members).Error; err != nil {
			return err
		}
	}

	committee.Members = members
	return nil
}

// NewRegulationService 构造监管文件服务
func NewRegulationService(gdb *gorm.DB) *RegulationService {
	return NewSectionService[db.Regulation](gdb, SectionSpec[db.Regulation]{
		Name: "regulation",
		Normalize: func(item *db.Regulation) error {
			item.Title = plainText(item.Title)
			item.Category = strings.ToLower(plainText(item.Category))
			if item.Category == "" {
				item.Category = "sast-regulations"
			}
			item.PDFURL = strings.TrimSpace(item.PDFURL)
			item.PublishedOn = strings.TrimSpace(item.PublishedOn)
			return nil
		},
		Validate: func(item *db.Regulation) error {
			if item.Title == "" {
				return requiredField("title")
			}
			if item.PDFURL == "" {
				return requiredField("pdfUrl")
			}
			if !validLink(item.PDFURL) {
				return invalidField("pdfUrl", "must be an http(s) or site-relative URL")
			}
			if !validDate(item.PublishedOn) {
				return invalidField("publishedOn", "must use YYYY-MM-DD")
			}
			return nil
		},
	})
}
