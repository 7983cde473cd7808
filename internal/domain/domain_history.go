// Package domain 定义领域模型和接口
package domain

import "sort"

// HistoryEntry is one note a user recently accessed
// HistoryEntry 用户最近访问的一条笔记记录
type HistoryEntry struct {
	ID     string   // canonical encoded note id, or an opaque legacy key
	Text   string   // display title
	Time   int64    // last interaction, epoch milliseconds
	Tags   []string // tags at last update
	Pinned bool
}

// Clone returns a deep copy
func (e *HistoryEntry) Clone() *HistoryEntry {
	c := *e
	if e.Tags != nil {
		c.Tags = append(make([]string, 0, len(e.Tags)), e.Tags...)
	}
	return &c
}

// HistoryList is the ordered form used for storage and transport
type HistoryList []*HistoryEntry

// HistoryMap is the keyed form used for single entry merges
type HistoryMap map[string]*HistoryEntry

// ToMap keys the list by id; on duplicate ids the later entry wins
func (l HistoryList) ToMap() HistoryMap {
	m := make(HistoryMap, len(l))
	for _, e := range l {
		if e == nil {
			continue
		}
		m[e.ID] = e
	}
	return m
}

// ToList returns the entries ordered by time descending, then id ascending
// ToList 按时间倒序（相同时间按 id 升序）输出
func (m HistoryMap) ToList() HistoryList {
	l := make(HistoryList, 0, len(m))
	for _, e := range m {
		l = append(l, e)
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].Time != l[j].Time {
			return l[i].Time > l[j].Time
		}
		return l[i].ID < l[j].ID
	})
	return l
}

// Clone returns a deep copy of the list
func (l HistoryList) Clone() HistoryList {
	if l == nil {
		return nil
	}
	out := make(HistoryList, 0, len(l))
	for _, e := range l {
		if e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}
