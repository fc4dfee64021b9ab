package resource

import (
	"cmp"
	"slices"
)

// Rank 是条目的显示位置：先比较 Order，相同时按 Seq（即 ID，插入顺序）比较
type Rank struct {
	Order int
	Seq   uint
}

// Compare 返回 -1、0 或 1
func (r Rank) Compare(other Rank) int {
	if c := cmp.Compare(r.Order, other.Order); c != 0 {
		return c
	}
	return cmp.Compare(r.Seq, other.Seq)
}

// Less 判断 r 是否排在 other 之前
func (r Rank) Less(other Rank) bool {
	return r.Compare(other) < 0
}

// RankOf 返回条目的排名
func RankOf[E Entry](item E) Rank {
	return Rank{Order: item.OrderValue(), Seq: item.Key()}
}

// SortByRank 按 Rank 稳定排序
func SortByRank[T any, P interface {
	*T
	Entry
}](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return RankOf(P(&a)).Compare(RankOf(P(&b)))
	})
}
