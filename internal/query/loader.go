package query

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// Load parses the query pack at path into an ordered list of Specs.
// JSON is assumed unless the extension is .yaml or .yml. The top level must
// be either a list of check objects or an object with a "queries" list;
// entries that are not objects are skipped. Missing fields get safe
// defaults, and tags given as a comma-separated string are split, trimmed,
// and stripped of empty tokens.
func Load(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.QUERIES_READ_FAILED,
			fmt.Sprintf("cannot read query pack %s", path), err)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, types.WrapError(types.QUERIES_PARSE_FAILED,
			fmt.Sprintf("cannot parse query pack %s", path), err)
	}

	items, err := itemsOf(raw, path)
	if err != nil {
		return nil, err
	}

	specs := make([]Spec, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		specs = append(specs, specFromObject(obj, i))
	}
	return specs, nil
}

// itemsOf extracts the check list from the decoded top-level value.
func itemsOf(raw any, path string) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case map[string]any:
		nested, ok := v["queries"]
		if !ok {
			break
		}
		list, ok := nested.([]any)
		if !ok {
			break
		}
		return list, nil
	}
	return nil, types.NewError(types.QUERIES_FORMAT_INVALID,
		fmt.Sprintf("unsupported queries format in %s: want a list or an object with a \"queries\" list", path))
}

// specFromObject builds a Spec from one decoded check object, applying
// positional fallbacks for id and name.
func specFromObject(obj map[string]any, index int) Spec {
	return Spec{
		ID:          stringField(obj, "id", strconv.Itoa(index)),
		Name:        stringField(obj, "name", fmt.Sprintf("Query %d", index)),
		Description: stringField(obj, "description", ""),
		Cypher:      stringField(obj, "query", ""),
		Kind:        stringField(obj, "type", "Nodes"),
		SelfCheck:   boolField(obj, "selfcheck"),
		Severity:    stringField(obj, "severity", ""),
		Category:    stringField(obj, "category", ""),
		Tags:        tagsField(obj["tags"]),
	}
}

// stringField extracts a string value, stringifying scalars so numeric ids
// survive the trip through JSON.
func stringField(obj map[string]any, key, fallback string) string {
	v, ok := obj[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// boolField extracts a boolean with best-effort coercion from strings and
// numbers.
func boolField(obj map[string]any, key string) bool {
	switch v := obj[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
		return err == nil && b
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

// tagsField normalizes the tags value. Lists are kept in order with each
// element stringified; a comma-separated string is split with whitespace
// trimmed and empty tokens dropped. Anything else yields no tags.
func tagsField(v any) []string {
	switch t := v.(type) {
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			tags = append(tags, fmt.Sprintf("%v", item))
		}
		return tags
	case string:
		var tags []string
		for _, part := range strings.Split(t, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		return tags
	default:
		return nil
	}
}
