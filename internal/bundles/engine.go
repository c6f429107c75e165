package bundles

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Attribute is one key/value pair carried on a cart line.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CartLine is a flattened checkout line as the validation function sees it.
type CartLine struct {
	ID         string      `json:"id,omitempty"`
	Quantity   int         `json:"quantity"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

// Cart is the checkout snapshot handed to Run.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// ValidationError is one structured failure. Target always references the
// cart root.
type ValidationError struct {
	Message string `json:"message"`
	Target  string `json:"target"`
}

// ValidationAdd carries the errors for one operation.
type ValidationAdd struct {
	Errors []ValidationError `json:"errors"`
}

// Operation wraps a single validationAdd instruction.
type Operation struct {
	ValidationAdd ValidationAdd `json:"validationAdd"`
}

// Result is the fixed-shape envelope the checkout platform consumes.
type Result struct {
	Operations []Operation `json:"operations"`
}

// Recognized line attribute keys. Anything else is ignored.
const (
	AttrBundleID     = "_bundle_id"
	AttrBundleName   = "_bundle_name"
	AttrIsBundleItem = "_is_bundle_item"
	AttrGiftMessage  = "_gift_message"
	AttrDiscountCode = "_discount_code"
)

const (
	cartTarget        = "$.cart"
	defaultBundleName = "Valentine's Bundle"

	minBundleItems    = 2
	maxBundleItems    = 10
	maxBundleQuantity = 5
	maxGiftMessageLen = 200
	maxBundlesPerCart = 3
	maxCartItems      = 50
)

var discountCodePattern = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// bundleGroup is the derived grouping of cart lines sharing a bundle id.
type bundleGroup struct {
	id    string
	lines []CartLine
}

// Run validates the cart's bundle structure and returns the error envelope.
// It is pure: the input is only read, and the same cart always produces the
// same errors. Malformed or missing attributes degrade to defaults instead
// of failing the run.
func Run(cart Cart) Result {
	groups, regularCount := groupLines(cart.Lines)

	var errs []ValidationError
	for _, group := range groups {
		errs = append(errs, validateBundle(group)...)
	}
	errs = append(errs, validateCartWide(groups, regularCount)...)

	if errs == nil {
		errs = []ValidationError{}
	}
	return Result{
		Operations: []Operation{
			{ValidationAdd: ValidationAdd{Errors: errs}},
		},
	}
}

// groupLines splits the cart into bundle groups (encounter order preserved)
// and a count of regular lines. A line joins a bundle only when it carries a
// bundle id and is explicitly marked as a bundle item.
func groupLines(lines []CartLine) ([]*bundleGroup, int) {
	var groups []*bundleGroup
	byID := make(map[string]*bundleGroup)
	regularCount := 0

	for _, line := range lines {
		bundleID, hasID := attributeValue(line, AttrBundleID)
		isBundleItem, _ := attributeValue(line, AttrIsBundleItem)
		if !hasID || bundleID == "" || isBundleItem != "true" {
			regularCount++
			continue
		}
		group, ok := byID[bundleID]
		if !ok {
			group = &bundleGroup{id: bundleID}
			byID[bundleID] = group
			groups = append(groups, group)
		}
		group.lines = append(group.lines, line)
	}

	return groups, regularCount
}

func validateBundle(group *bundleGroup) []ValidationError {
	if len(group.lines) == 0 {
		return nil
	}

	var errs []ValidationError
	first := group.lines[0]
	name := displayName(first)
	firstQuantity := first.Quantity

	for _, line := range group.lines[1:] {
		if line.Quantity != firstQuantity {
			errs = append(errs, cartError(fmt.Sprintf("All items in %q must have the same quantity", name)))
			break
		}
	}

	if len(group.lines) < minBundleItems {
		errs = append(errs, cartError(fmt.Sprintf("%q must contain at least 2 items to qualify as a Valentine's bundle", name)))
	}

	if len(group.lines) > maxBundleItems {
		errs = append(errs, cartError(fmt.Sprintf("%q contains too many items (maximum 10 allowed)", name)))
	}

	if firstQuantity > maxBundleQuantity {
		errs = append(errs, cartError(fmt.Sprintf("%q quantity cannot exceed 5 per bundle", name)))
	}

	if message, ok := attributeValue(first, AttrGiftMessage); ok && utf8.RuneCountInString(message) > maxGiftMessageLen {
		errs = append(errs, cartError(fmt.Sprintf("Gift message for %q is too long (maximum 200 characters)", name)))
	}

	if code, ok := attributeValue(first, AttrDiscountCode); ok && code != "" && !validDiscountCode(code) {
		errs = append(errs, cartError(fmt.Sprintf("Invalid discount code %q for %q", code, name)))
	}

	return errs
}

func validateCartWide(groups []*bundleGroup, regularCount int) []ValidationError {
	var errs []ValidationError

	if len(groups) > maxBundlesPerCart {
		errs = append(errs, cartError("Maximum 3 Valentine's bundles allowed per order"))
	}

	totalItems := regularCount
	for _, group := range groups {
		totalItems += len(group.lines)
	}
	if totalItems > maxCartItems {
		errs = append(errs, cartError("Cart contains too many items (maximum 50 allowed)"))
	}

	// Name collisions only consider explicitly named bundles; the default
	// display name never collides. Every repeat past the first errors.
	seen := make(map[string]bool)
	for _, group := range groups {
		name, ok := attributeValue(group.lines[0], AttrBundleName)
		if !ok || name == "" {
			continue
		}
		if seen[name] {
			errs = append(errs, cartError(fmt.Sprintf("Duplicate bundle name %q found. Each bundle must have a unique name.", name)))
			continue
		}
		seen[name] = true
	}

	return errs
}

func displayName(line CartLine) string {
	if name, ok := attributeValue(line, AttrBundleName); ok && name != "" {
		return name
	}
	return defaultBundleName
}

func validDiscountCode(code string) bool {
	return discountCodePattern.MatchString(strings.ToUpper(code))
}

func attributeValue(line CartLine, key string) (string, bool) {
	for _, attr := range line.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

func cartError(message string) ValidationError {
	return ValidationError{Message: message, Target: cartTarget}
}
