package dto

import (
	"github.com/haierkeys/fast-note-history-service/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// HistoryEntryDTO is one history entry on the wire
// HistoryEntryDTO 历史记录条目
type HistoryEntryDTO struct {
	ID     string   `json:"id"`
	Text   string   `json:"text"`
	Time   int64    `json:"time"` // epoch milliseconds
	Tags   []string `json:"tags"`
	Pinned bool     `json:"pinned,omitempty"`
}

// HistoryResponse 历史记录列表响应
type HistoryResponse struct {
	History []*HistoryEntryDTO `json:"history"`
}

// HistoryGetRequest 获取历史记录请求参数
type HistoryGetRequest struct {
	Parent string `json:"parent" form:"parent"` // encoded folder id
}

// HistoryReplaceRequest carries the whole list as a JSON encoded array string
// HistoryReplaceRequest 整体替换历史记录请求参数
type HistoryReplaceRequest struct {
	History string `json:"history" form:"history" binding:"required"`
}

// HistoryPinRequest 置顶请求参数
type HistoryPinRequest struct {
	Pinned string `json:"pinned" form:"pinned" binding:"required"` // "true" or "false"
}

// ErrHistoryNotArray is returned by ParseHistoryList when the payload is not a JSON array of entries
var ErrHistoryNotArray = errors.New("history is not a JSON array")

// HistoryFromDomain maps the ordered list to its wire form; tags are never null
func HistoryFromDomain(list domain.HistoryList) ([]*HistoryEntryDTO, error) {
	out := make([]*HistoryEntryDTO, 0, len(list))
	if err := copier.CopyWithOption(&out, &list, copier.Option{DeepCopy: true}); err != nil {
		return nil, errors.Wrap(err, "copy history entries")
	}
	for _, e := range out {
		if e.Tags == nil {
			e.Tags = []string{}
		}
	}
	return out, nil
}

// ParseHistoryList decodes a JSON array string into a domain list
// ParseHistoryList 解析 JSON 数组字符串
func ParseHistoryList(raw string) (domain.HistoryList, error) {
	var items []*HistoryEntryDTO
	if err := sonic.UnmarshalString(raw, &items); err != nil {
		return nil, errors.Wrap(ErrHistoryNotArray, err.Error())
	}
	if items == nil {
		return nil, ErrHistoryNotArray
	}

	list := make(domain.HistoryList, 0, len(items))
	for _, it := range items {
		if it == nil || it.ID == "" {
			return nil, errors.Wrap(ErrHistoryNotArray, "entry without id")
		}
		tags := it.Tags
		if tags == nil {
			tags = []string{}
		}
		list = append(list, &domain.HistoryEntry{
			ID:     it.ID,
			Text:   it.Text,
			Time:   it.Time,
			Tags:   tags,
			Pinned: it.Pinned,
		})
	}
	return list, nil
}
