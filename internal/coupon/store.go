package coupon

import (
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

// Store is a read-only, case-insensitive coupon lookup table loaded at
// startup. Applying a coupon never mutates the store, so repeated calls with
// the same inputs always yield the same discount.
type Store struct {
	rules map[string]Rule
}

// NewStore builds a store from validated rules. Codes are matched
// case-insensitively; later duplicates win.
func NewStore(rules []Rule) *Store {
	indexed := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		indexed[strings.ToUpper(strings.TrimSpace(rule.Code))] = rule
	}
	return &Store{rules: indexed}
}

// Len reports the number of loaded rules.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Lookup finds a rule by code, ignoring case and surrounding whitespace.
func (s *Store) Lookup(code string) (Rule, bool) {
	if s == nil {
		return Rule{}, false
	}
	rule, ok := s.rules[strings.ToUpper(strings.TrimSpace(code))]
	return rule, ok
}

// Apply validates a code against a subtotal and returns the discount amount.
func (s *Store) Apply(code string, subtotal pricing.Money) (pricing.Money, error) {
	rule, ok := s.Lookup(code)
	if !ok {
		return 0, ErrNotFound
	}
	if subtotal < rule.MinPurchase {
		return 0, &MinPurchaseError{Code: rule.Code, Required: rule.MinPurchase}
	}
	return Compute(rule, subtotal), nil
}

type couponFile struct {
	Coupons []Rule `koanf:"coupons"`
}

// Load reads the coupon reference table from a YAML file.
func Load(path string) (*Store, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load coupon table %s: %w", path, err)
	}
	var parsed couponFile
	if err := k.Unmarshal("", &parsed); err != nil {
		return nil, fmt.Errorf("parse coupon table %s: %w", path, err)
	}
	validate := validator.New()
	for i, rule := range parsed.Coupons {
		if err := validate.Struct(rule); err != nil {
			return nil, fmt.Errorf("coupon %d (%s) invalid: %w", i, rule.Code, err)
		}
		if rule.Kind == KindPercentage && rule.Value > 100 {
			return nil, fmt.Errorf("coupon %s: percentage value must not exceed 100", rule.Code)
		}
		if rule.MaxDiscount != nil && *rule.MaxDiscount <= 0 {
			return nil, fmt.Errorf("coupon %s: max discount must be positive when set", rule.Code)
		}
	}
	return NewStore(parsed.Coupons), nil
}
