package agents

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"gopkg.in/yaml.v3"

	"github.com/voyago/tripdesk/trip"
)

// PackingRule adds items when its expression evaluates true against the
// aggregated trip weather. Expressions see these variables:
//
//	max_high_c, min_low_c, max_precip, rainy_days, has_snow, nights
type PackingRule struct {
	When  string   `yaml:"when"`
	Items []string `yaml:"items"`
}

// packingRulesFile is the optional on-disk rule set
type packingRulesFile struct {
	Rules []PackingRule `yaml:"rules"`
}

// DefaultPackingRules returns the built-in rule set
func DefaultPackingRules() []PackingRule {
	return []PackingRule{
		{When: "max_precip >= 40 || rainy_days >= 2", Items: []string{"rain jacket", "compact umbrella"}},
		{When: "max_high_c >= 25", Items: []string{"sunscreen", "sunglasses", "light clothing"}},
		{When: "min_low_c <= 10", Items: []string{"warm jacket", "layers"}},
		{When: "min_low_c <= 0", Items: []string{"gloves", "thermal underwear", "beanie"}},
		{When: "has_snow", Items: []string{"waterproof boots"}},
		{When: "nights >= 7", Items: []string{"laundry bag"}},
	}
}

// LoadPackingRules reads a YAML rule set from disk
func LoadPackingRules(path string) ([]PackingRule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read packing rules: %w", err)
	}
	var file packingRulesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse packing rules: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("packing rules file %s has no rules", path)
	}
	return file.Rules, nil
}

// baseItems go on every list regardless of weather
var baseItems = []string{"travel documents", "phone charger", "toiletries"}

// preferenceItems add gear for stated interests
var preferenceItems = map[string][]string{
	"hik":    {"hiking boots", "daypack"},
	"beach":  {"swimwear", "beach towel"},
	"museum": {"comfortable walking shoes"},
	"photo":  {"camera", "spare batteries"},
	"run":    {"running shoes"},
	"ski":    {"ski gloves", "base layers"},
}

func weatherParameters(weather []trip.WeatherRecord, nights int) map[string]interface{} {
	maxHigh := weather[0].HighC
	minLow := weather[0].LowC
	maxPrecip := 0
	rainyDays := 0
	hasSnow := false

	for _, w := range weather {
		if w.HighC > maxHigh {
			maxHigh = w.HighC
		}
		if w.LowC < minLow {
			minLow = w.LowC
		}
		if w.PrecipChance > maxPrecip {
			maxPrecip = w.PrecipChance
		}
		if w.PrecipChance >= 50 {
			rainyDays++
		}
		if strings.Contains(strings.ToLower(w.Condition), "snow") {
			hasSnow = true
		}
	}

	// govaluate compares numbers as float64
	return map[string]interface{}{
		"max_high_c": maxHigh,
		"min_low_c":  minLow,
		"max_precip": float64(maxPrecip),
		"rainy_days": float64(rainyDays),
		"has_snow":   hasSnow,
		"nights":     float64(nights),
	}
}

// BuildPackingList derives a deduplicated packing list from the trip weather
// and the traveler's stated preferences. It needs at least one weather
// record; callers gate on that.
func BuildPackingList(rules []PackingRule, weather []trip.WeatherRecord, preferences string) ([]string, error) {
	if len(weather) == 0 {
		return nil, fmt.Errorf("no weather records to derive packing from")
	}
	if len(rules) == 0 {
		rules = DefaultPackingRules()
	}

	params := weatherParameters(weather, len(weather))

	items := make([]string, 0, len(baseItems)+8)
	items = append(items, baseItems...)

	for _, rule := range rules {
		expr, err := govaluate.NewEvaluableExpression(rule.When)
		if err != nil {
			return nil, fmt.Errorf("invalid packing rule %q: %w", rule.When, err)
		}
		result, err := expr.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("evaluating packing rule %q: %w", rule.When, err)
		}
		if matched, ok := result.(bool); ok && matched {
			items = append(items, rule.Items...)
		}
	}

	lowered := strings.ToLower(preferences)
	keywords := make([]string, 0, len(preferenceItems))
	for keyword := range preferenceItems {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			items = append(items, preferenceItems[keyword]...)
		}
	}

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out, nil
}
