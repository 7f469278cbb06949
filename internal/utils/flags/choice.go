package flags

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choiceTypeNameConstant      = "string"
	choiceUsageTemplateConstant = "`<%s>` %s"
	choiceUsageBareTemplate     = "`<%s>`"
	choiceSeparatorConstant     = "|"
	choiceInvalidValueTemplate  = "invalid value %q (expected one of %s)"
	choiceListSeparatorConstant = ", "
)

// AddChoiceFlag registers a string flag that only accepts one of choices, case-insensitively.
// The stored value is the canonical choice spelling; an unset flag reads as an empty string.
func AddChoiceFlag(flagSet *pflag.FlagSet, name string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}
	flagSet.Var(&choiceValue{choices: normalizeChoices(choices)}, name, FormatChoiceUsage(defaultChoice, choices, description))
}

// FormatChoiceUsage renders choices as a `<a|B|c>` placeholder with the default in upper case.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	defaultKey := strings.ToLower(strings.TrimSpace(defaultChoice))
	displayed := normalizeChoices(choices)
	for index, choice := range displayed {
		if len(defaultKey) > 0 && strings.ToLower(choice) == defaultKey {
			displayed[index] = strings.ToUpper(choice)
		}
	}

	placeholder := strings.Join(displayed, choiceSeparatorConstant)
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(choiceUsageBareTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageTemplateConstant, placeholder, trimmedDescription)
}

// normalizeChoices trims choices and drops blanks and case-insensitive duplicates, keeping first-seen order.
func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		if len(trimmedChoice) == 0 {
			continue
		}
		duplicate := slices.ContainsFunc(normalized, func(existing string) bool {
			return strings.EqualFold(existing, trimmedChoice)
		})
		if !duplicate {
			normalized = append(normalized, trimmedChoice)
		}
	}
	return normalized
}

type choiceValue struct {
	selected string
	choices  []string
}

func (value *choiceValue) Set(rawValue string) error {
	trimmedValue := strings.TrimSpace(rawValue)
	matchIndex := slices.IndexFunc(value.choices, func(choice string) bool {
		return strings.EqualFold(choice, trimmedValue)
	})
	if matchIndex < 0 {
		return fmt.Errorf(choiceInvalidValueTemplate, rawValue, strings.Join(value.choices, choiceListSeparatorConstant))
	}
	value.selected = value.choices[matchIndex]
	return nil
}

func (value *choiceValue) String() string {
	if value == nil {
		return ""
	}
	return value.selected
}

func (value *choiceValue) Type() string {
	return choiceTypeNameConstant
}
