package model

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// HistoryItem is the stored shape of one history entry inside user.history
// HistoryItem 用户历史记录 JSON 中的单条记录
type HistoryItem struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Time   Millis  `json:"time"`
	Tags   TagList `json:"tags"`
	Pinned bool    `json:"pinned,omitempty"`
}

// TagList accepts a JSON array of strings, a single comma separated string, or null
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		var out TagList
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*t = out
		return nil
	}
	var list []string
	if err := sonic.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

// Millis is epoch milliseconds; older rows may hold a float or a numeric string
type Millis int64

func (m *Millis) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*m = Millis(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*m = Millis(int64(f))
	return nil
}
