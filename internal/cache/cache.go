// Package cache 태그 기반 TTL 캐시
// 스프레드시트 조회 결과를 태그 단위로 보관하고,
// 쓰기 작업 후 해당 태그만 무효화한다.
package cache

import (
	"sync"
	"time"
)

// 캐시 태그
const (
	TagDailyReports = "daily-reports"
	TagProjects     = "projects"
	TagManagers     = "managers"
	TagItemData     = "item-data"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TagCache 태그별 단일 값 TTL 캐시
type TagCache struct {
	mu      sync.Mutex
	entries map[string]entry
}

// New 빈 캐시 생성
func New() *TagCache {
	return &TagCache{entries: make(map[string]entry)}
}

// GetOr 태그의 유효한 캐시 값을 돌려주거나, 없으면 loader 를 호출해 채운다.
// loader 가 실패하면 캐시에 저장하지 않고 에러를 그대로 돌려준다.
func (c *TagCache) GetOr(tag string, ttl time.Duration, loader func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[tag]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	v, err := loader()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[tag] = entry{value: v, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return v, nil
}

// Invalidate 지정한 태그들의 캐시를 제거한다.
func (c *TagCache) Invalidate(tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, tag := range tags {
		delete(c.entries, tag)
	}
}

// InvalidateAll 모든 태그의 캐시를 제거한다.
func (c *TagCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Sweep 만료된 항목을 제거하고 제거 수를 돌려준다.
func (c *TagCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for tag, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, tag)
			removed++
		}
	}
	return removed
}
