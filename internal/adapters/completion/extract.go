package completion

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Tier names the extraction rule that produced a reply
type Tier string

const (
	TierContent    Tier = "content"
	TierOutputText Tier = "output_text"
	TierMessage    Tier = "message"
	TierRaw        Tier = "raw"
)

// Reply is the text pulled out of a completion payload
type Reply struct {
	Text string
	Tier Tier
}

type extractor struct {
	tier Tier
	fn   func(root gjson.Result) (string, bool)
}

// extractors run in order; the first match wins. TierRaw is the fallback.
var extractors = []extractor{
	{TierContent, firstContentText},
	{TierOutputText, joinedOutputText},
	{TierMessage, firstMessageOutputText},
}

// ExtractReply pulls reply text out of a Responses API payload. It never
// fails: payloads no rule understands are returned serialized.
func ExtractReply(raw []byte) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			reply = Reply{Text: serialize(raw), Tier: TierRaw}
		}
	}()

	root := gjson.ParseBytes(raw)
	for _, ex := range extractors {
		if text, ok := ex.fn(root); ok {
			return Reply{Text: text, Tier: ex.tier}
		}
	}

	return Reply{Text: serialize(raw), Tier: TierRaw}
}

// firstContentText reads output[0].content[0]: a bare string, or an object
// whose text is either {value: "..."} or a plain value.
func firstContentText(root gjson.Result) (string, bool) {
	first, ok := index(root.Get("output"), 0)
	if !ok {
		return "", false
	}
	item, ok := index(first.Get("content"), 0)
	if !ok {
		return "", false
	}

	if item.Type == gjson.String {
		return item.Str, item.Str != ""
	}
	if !item.IsObject() {
		return "", false
	}

	text := item.Get("text")
	if !truthy(text) {
		return "", false
	}
	if text.IsObject() {
		if value := text.Get("value"); truthy(value) {
			return asText(value), true
		}
	}
	return asText(text), true
}

// joinedOutputText joins a top-level output_text array with newlines
func joinedOutputText(root gjson.Result) (string, bool) {
	field := root.Get("output_text")
	if !field.IsArray() {
		return "", false
	}

	parts := make([]string, 0, len(field.Array()))
	for _, part := range field.Array() {
		if part.Type == gjson.Null {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, asText(part))
	}

	joined := strings.Join(parts, "\n")
	return joined, joined != ""
}

// firstMessageOutputText finds the first output item of type "message" that
// carries output_text content. Reasoning models put a reasoning item first.
func firstMessageOutputText(root gjson.Result) (string, bool) {
	output := root.Get("output")
	if !output.IsArray() {
		return "", false
	}

	for _, item := range output.Array() {
		if item.Get("type").String() != "message" {
			continue
		}
		for _, part := range item.Get("content").Array() {
			if part.Get("type").String() != "output_text" {
				continue
			}
			if text := part.Get("text"); text.Type == gjson.String && text.Str != "" {
				return text.Str, true
			}
		}
	}
	return "", false
}

func index(r gjson.Result, i int) (gjson.Result, bool) {
	if !r.IsArray() {
		return gjson.Result{}, false
	}
	items := r.Array()
	if i >= len(items) {
		return gjson.Result{}, false
	}
	return items[i], true
}

// truthy mirrors how loosely-typed clients treat a JSON value as present
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

func asText(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return r.Raw
}

func serialize(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
