package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxNameRunes        = 64
	maxSymbolRunes      = 16
	maxDescriptionRunes = 280

	// timestamps below this are taken to be seconds
	millisThreshold = 1_000_000_000_000
)

// Token is a launch record in the shape the page renders
type Token struct {
	Mint             string          `json:"mint"`
	Name             string          `json:"name"`
	Symbol           string          `json:"symbol"`
	Description      string          `json:"description,omitempty"`
	ImageURI         string          `json:"imageUri,omitempty"`
	Creator          string          `json:"creator,omitempty"`
	MarketCap        decimal.Decimal `json:"marketCap"`
	USDMarketCap     decimal.Decimal `json:"usdMarketCap"`
	CreatedTimestamp int64           `json:"createdTimestamp,omitempty"`
	ReplyCount       int64           `json:"replyCount"`
	Twitter          string          `json:"twitter,omitempty"`
	Telegram         string          `json:"telegram,omitempty"`
	Website          string          `json:"website,omitempty"`
}

type record map[string]any

// decodeRecords accepts a bare array or an object wrapping one under coins, tokens or data
func decodeRecords(body []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case map[string]any:
		for _, key := range []string{"coins", "tokens", "data"} {
			if list, ok := v[key].([]any); ok {
				items = list
				break
			}
		}
		if items == nil {
			return nil, errors.New("no token list in response")
		}
	default:
		return nil, errors.New("unexpected response shape")
	}

	records := make([]record, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			records = append(records, obj)
		}
	}
	return records, nil
}

// normalize reshapes one upstream record. Records without a mint or name are dropped.
func normalize(r record) (Token, bool) {
	t := Token{
		Mint: strings.TrimSpace(r.str("mint")),
		Name: truncate(strings.TrimSpace(r.str("name")), maxNameRunes),
	}
	if t.Mint == "" || t.Name == "" {
		return Token{}, false
	}

	t.Symbol = strings.ToUpper(truncate(strings.TrimSpace(r.str("symbol")), maxSymbolRunes))
	t.Description = truncate(strings.TrimSpace(r.str("description")), maxDescriptionRunes)
	t.Creator = strings.TrimSpace(r.str("creator"))
	t.ImageURI = safeURL(r.str("image_uri", "imageUri"))
	t.Twitter = safeURL(r.str("twitter"))
	t.Telegram = safeURL(r.str("telegram"))
	t.Website = safeURL(r.str("website"))
	t.MarketCap = money(r.get("market_cap", "marketCap"))
	t.USDMarketCap = money(r.get("usd_market_cap", "usdMarketCap"))
	t.CreatedTimestamp = millis(r.get("created_timestamp", "createdTimestamp"))
	if n := integer(r.get("reply_count", "replyCount")); n > 0 {
		t.ReplyCount = n
	}
	return t, true
}

func normalizeAll(records []record) []Token {
	tokens := make([]Token, 0, len(records))
	for _, r := range records {
		if t, ok := normalize(r); ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func (r record) get(keys ...string) any {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (r record) str(keys ...string) string {
	switch v := r.get(keys...).(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !httpURL(raw) {
		return ""
	}
	return raw
}

// money parses a string or number amount. Negative and unparseable amounts become zero.
func money(v any) decimal.Decimal {
	var d decimal.Decimal
	var err error
	switch v := v.(type) {
	case json.Number:
		d, err = decimal.NewFromString(v.String())
	case string:
		d, err = decimal.NewFromString(strings.TrimSpace(v))
	default:
		return decimal.Zero
	}
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}

func integer(v any) int64 {
	d := money(v)
	return d.IntPart()
}

func millis(v any) int64 {
	ts := integer(v)
	if ts <= 0 {
		return 0
	}
	if ts < millisThreshold {
		return ts * 1000
	}
	return ts
}
