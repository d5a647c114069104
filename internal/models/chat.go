package models

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
)

// Chat is a conversation as the admin API returns it. Only the id and the
// takeover flag are interpreted; every other field is carried verbatim.
type Chat struct {
	ID         int64
	IsTakeOver bool
	Fields     map[string]json.RawMessage
}

const (
	chatIDKey       = "id"
	chatTakeOverKey = "isTakeOver"
)

func (c *Chat) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	idRaw, ok := raw[chatIDKey]
	if !ok {
		return fmt.Errorf("chat: missing %q", chatIDKey)
	}
	if err := json.Unmarshal(idRaw, &c.ID); err != nil {
		return fmt.Errorf("chat: invalid %q: %w", chatIDKey, err)
	}
	delete(raw, chatIDKey)

	c.IsTakeOver = false
	if v, ok := raw[chatTakeOverKey]; ok {
		if !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			if err := json.Unmarshal(v, &c.IsTakeOver); err != nil {
				return fmt.Errorf("chat: invalid %q: %w", chatTakeOverKey, err)
			}
		}
		delete(raw, chatTakeOverKey)
	}

	if len(raw) == 0 {
		raw = nil
	}
	c.Fields = raw
	return nil
}

func (c Chat) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		if k == chatIDKey || k == chatTakeOverKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	buf.WriteString(strconv.FormatInt(c.ID, 10))
	buf.WriteString(`,"isTakeOver":`)
	if c.IsTakeOver {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(c.Fields[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy so callers may keep the value across dispatches.
func (c *Chat) Clone() *Chat {
	if c == nil {
		return nil
	}
	out := &Chat{ID: c.ID, IsTakeOver: c.IsTakeOver}
	if c.Fields != nil {
		out.Fields = make(map[string]json.RawMessage, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Title returns the "title" field when present as a JSON string.
func (c *Chat) Title() string {
	if c == nil {
		return ""
	}
	var title string
	if raw, ok := c.Fields["title"]; ok {
		_ = json.Unmarshal(raw, &title)
	}
	return title
}
