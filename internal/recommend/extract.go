package recommend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrUnparseable is returned when no recommendation array can be recovered.
var ErrUnparseable = errors.New("no recommendation array found in model output")

var (
	arrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
	markdown     = goldmark.New()
)

// rawRecommendation is the lenient wire shape of one model-produced record.
// Numbers may arrive as strings and lists as scalars.
type rawRecommendation struct {
	Type            string `json:"type"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	URL             string `json:"url"`
	Year            any    `json:"year"`
	Score           any    `json:"score"`
	Reason          string `json:"reason"`
	Keywords        any    `json:"keywords"`
	MatchedKeywords any    `json:"matchedKeywords"`

	Journal       string `json:"journal"`
	Authors       any    `json:"authors"`
	CitationCount any    `json:"citationCount"`

	Publisher string `json:"publisher"`
	DataSize  any    `json:"dataSize"`
	Format    string `json:"format"`
}

// ExtractRecommendations recovers recommendation records from free-form model
// output. It strips code fences, then tries the outermost bracketed array, a
// top-level object with a "recommendations" array, and finally the well-formed
// prefix of a truncated array. Records without a title are dropped.
func ExtractRecommendations(content string) ([]Recommendation, error) {
	body := strings.TrimSpace(stripFences(content))
	if body == "" {
		return nil, ErrUnparseable
	}

	raws, err := decodeRaw(body)
	if err != nil {
		return nil, err
	}

	out := make([]Recommendation, 0, len(raws))
	for _, raw := range raws {
		if rec, ok := raw.toRecommendation(); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func decodeRaw(body string) ([]rawRecommendation, error) {
	if m := arrayPattern.FindString(body); m != "" {
		var raws []rawRecommendation
		if err := json.Unmarshal([]byte(m), &raws); err == nil {
			return raws, nil
		}
	}

	if strings.HasPrefix(body, "{") {
		var wrapped struct {
			Recommendations []rawRecommendation `json:"recommendations"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err == nil && wrapped.Recommendations != nil {
			return wrapped.Recommendations, nil
		}
	}

	if raws := salvageArray(body); len(raws) > 0 {
		return raws, nil
	}
	return nil, ErrUnparseable
}

// salvageArray decodes array elements one at a time from the first '[' and
// keeps those that decoded before the input broke off.
func salvageArray(body string) []rawRecommendation {
	start := strings.IndexByte(body, '[')
	if start < 0 {
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(body[start:]))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return nil
	}

	var raws []rawRecommendation
	for dec.More() {
		var raw rawRecommendation
		if err := dec.Decode(&raw); err != nil {
			break
		}
		raws = append(raws, raw)
	}
	return raws
}

// stripFences returns the body of the first fenced code block, or content
// unchanged when there is none. Unterminated fences run to the end of input.
func stripFences(content string) string {
	if !strings.Contains(content, "```") && !strings.Contains(content, "~~~") {
		return content
	}

	src := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(src))

	var body []byte
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		body = buf.Bytes()
		found = true
		return ast.WalkStop, nil
	})

	if !found {
		return content
	}
	return string(body)
}

func (raw rawRecommendation) toRecommendation() (Recommendation, bool) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return Recommendation{}, false
	}

	year := toInt(raw.Year)
	if year <= 0 {
		year = DefaultYear
	}
	score, _ := toFloat(raw.Score)

	var r Recommendation
	if strings.EqualFold(strings.TrimSpace(raw.Type), string(KindDataset)) {
		r = NewDataset(title, strings.TrimSpace(raw.Description), strings.TrimSpace(raw.URL), year, 0, DatasetInfo{
			Publisher: strings.TrimSpace(raw.Publisher),
			DataSize:  toString(raw.DataSize),
			Format:    strings.TrimSpace(raw.Format),
		})
	} else {
		r = NewPaper(title, strings.TrimSpace(raw.Description), strings.TrimSpace(raw.URL), year, 0, PaperInfo{
			Journal:       strings.TrimSpace(raw.Journal),
			Authors:       toStrings(raw.Authors),
			CitationCount: max(0, toInt(raw.CitationCount)),
		})
	}
	r.SetScore(score)
	r.Reason = strings.TrimSpace(raw.Reason)
	r.Keywords = toStrings(raw.Keywords)
	r.MatchedKeywords = toStrings(raw.MatchedKeywords)
	if len(r.MatchedKeywords) == 0 {
		r.MatchedKeywords = r.Keywords
	}
	r.MatchedFields.Keywords = len(r.Keywords) > 0
	return r, true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) int {
	f, ok := toFloat(v)
	if !ok {
		return 0
	}
	return int(f)
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func toStrings(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case string:
		for _, part := range strings.Split(x, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range x {
			if s := toString(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
