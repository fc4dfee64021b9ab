package resource

import "time"

// FlashKind 区分错误提示与成功提示
type FlashKind string

const (
	FlashError   FlashKind = "error"
	FlashSuccess FlashKind = "success"
)

// Flash 是一条会在 TTL 后自动消失的提示
type Flash struct {
	Kind      FlashKind
	Text      string
	ExpiresAt time.Time
}

// flashBoard 按类别保存最新的提示，过期的提示在读取时丢弃
type flashBoard struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[FlashKind]Flash
}

func newFlashBoard(ttl time.Duration, now func() time.Time) *flashBoard {
	if now == nil {
		now = time.Now
	}
	return &flashBoard{ttl: ttl, now: now, entries: make(map[FlashKind]Flash)}
}

func (b *flashBoard) set(kind FlashKind, text string) {
	entry := Flash{Kind: kind, Text: text}
	if b.ttl > 0 {
		entry.ExpiresAt = b.now().Add(b.ttl)
	}
	b.entries[kind] = entry
	// 错误与成功提示互斥
	switch kind {
	case FlashError:
		delete(b.entries, FlashSuccess)
	case FlashSuccess:
		delete(b.entries, FlashError)
	}
}

func (b *flashBoard) clear(kind FlashKind) {
	delete(b.entries, kind)
}

func (b *flashBoard) get(kind FlashKind) string {
	entry, ok := b.entries[kind]
	if !ok {
		return ""
	}
	if !entry.ExpiresAt.IsZero() && !b.now().Before(entry.ExpiresAt) {
		delete(b.entries, kind)
		return ""
	}
	return entry.Text
}
