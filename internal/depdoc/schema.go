package depdoc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/temirov/depdoc/internal/shared"
)

const (
	dependencyKeyConstant            = "dependency"
	nameKeyConstant                  = "name"
	purposeKeyConstant               = "purpose"
	scopeKeyConstant                 = "scope"
	pathSeparatorConstant            = "."
	requiredMessageConstant          = "Required"
	expectedTypeTemplateConstant     = "Expected %s, received %s"
	emptyNameMessageConstant         = "name must be non-empty"
	emptyPurposeMessageConstant      = "purpose must be non-empty"
	emptyDependencyListMessage       = "dep-doc.toml must have at least one [[dependency]] entry"
	invalidEnumTemplateConstant      = "Invalid enum value. Expected %s, received '%s'"
	unrecognizedKeysTemplateConstant = "Unrecognized key(s) in object: %s"
	quotedValueTemplateConstant      = "'%s'"
	enumSeparatorConstant            = " | "
	keyListSeparatorConstant         = ", "
	typeNameStringConstant           = "string"
	typeNameNumberConstant           = "number"
	typeNameBooleanConstant          = "boolean"
	typeNameArrayConstant            = "array"
	typeNameObjectConstant           = "object"
	typeNameDateConstant             = "date"
	typeNameNullConstant             = "null"
	typeNameUnknownTemplateConstant  = "%T"
)

var allowedEntryKeys = map[string]struct{}{
	nameKeyConstant:    {},
	purposeKeyConstant: {},
	scopeKeyConstant:   {},
}

// validateDocument walks the decoded TOML tree and returns the validated entries
// together with every violation encountered. Entries are only meaningful when no
// violations are returned.
func validateDocument(document map[string]any) ([]Entry, []Violation) {
	rawDependencies, present := document[dependencyKeyConstant]
	if !present {
		return nil, []Violation{{Path: dependencyKeyConstant, Message: requiredMessageConstant}}
	}

	dependencyList, isList := rawDependencies.([]any)
	if !isList {
		return nil, []Violation{{Path: dependencyKeyConstant, Message: expectedTypeMessage(typeNameArrayConstant, rawDependencies)}}
	}

	if len(dependencyList) == 0 {
		return nil, []Violation{{Path: dependencyKeyConstant, Message: emptyDependencyListMessage}}
	}

	entries := make([]Entry, 0, len(dependencyList))
	var violations []Violation
	for entryIndex, rawEntry := range dependencyList {
		entry, entryViolations := validateEntry(joinPath(dependencyKeyConstant, strconv.Itoa(entryIndex)), rawEntry)
		if len(entryViolations) > 0 {
			violations = append(violations, entryViolations...)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, violations
}

func validateEntry(entryPath string, rawEntry any) (Entry, []Violation) {
	table, isTable := rawEntry.(map[string]any)
	if !isTable {
		return Entry{}, []Violation{{Path: entryPath, Message: expectedTypeMessage(typeNameObjectConstant, rawEntry)}}
	}

	var violations []Violation

	name, nameViolation := requireNonEmptyString(entryPath, table, nameKeyConstant, emptyNameMessageConstant)
	if nameViolation != nil {
		violations = append(violations, *nameViolation)
	}

	purpose, purposeViolation := requireNonEmptyString(entryPath, table, purposeKeyConstant, emptyPurposeMessageConstant)
	if purposeViolation != nil {
		violations = append(violations, *purposeViolation)
	}

	scope, scopeViolation := requireScope(entryPath, table)
	if scopeViolation != nil {
		violations = append(violations, *scopeViolation)
	}

	if unknownKeys := unrecognizedKeys(table); len(unknownKeys) > 0 {
		violations = append(violations, Violation{
			Path:    entryPath,
			Message: fmt.Sprintf(unrecognizedKeysTemplateConstant, quoteAndJoin(unknownKeys, keyListSeparatorConstant)),
		})
	}

	if len(violations) > 0 {
		return Entry{}, violations
	}

	return Entry{Name: name, Purpose: purpose, Scope: scope}, nil
}

func requireNonEmptyString(entryPath string, table map[string]any, key string, emptyMessage string) (string, *Violation) {
	fieldPath := joinPath(entryPath, key)
	rawValue, present := table[key]
	if !present {
		return "", &Violation{Path: fieldPath, Message: requiredMessageConstant}
	}
	value, isString := rawValue.(string)
	if !isString {
		return "", &Violation{Path: fieldPath, Message: expectedTypeMessage(typeNameStringConstant, rawValue)}
	}
	if len(value) == 0 {
		return "", &Violation{Path: fieldPath, Message: emptyMessage}
	}
	return value, nil
}

func requireScope(entryPath string, table map[string]any) (shared.Scope, *Violation) {
	fieldPath := joinPath(entryPath, scopeKeyConstant)
	rawValue, present := table[scopeKeyConstant]
	if !present {
		return "", &Violation{Path: fieldPath, Message: requiredMessageConstant}
	}
	value, isString := rawValue.(string)
	if !isString {
		return "", &Violation{Path: fieldPath, Message: expectedTypeMessage(typeNameStringConstant, rawValue)}
	}
	scope, parseError := shared.ParseScope(value)
	if parseError != nil {
		return "", &Violation{Path: fieldPath, Message: invalidEnumMessage(value)}
	}
	return scope, nil
}

func unrecognizedKeys(table map[string]any) []string {
	var unknownKeys []string
	for key := range table {
		if _, allowed := allowedEntryKeys[key]; allowed {
			continue
		}
		unknownKeys = append(unknownKeys, key)
	}
	sort.Strings(unknownKeys)
	return unknownKeys
}

func invalidEnumMessage(received string) string {
	scopes := shared.Scopes()
	scopeNames := make([]string, 0, len(scopes))
	for _, scope := range scopes {
		scopeNames = append(scopeNames, string(scope))
	}
	return fmt.Sprintf(invalidEnumTemplateConstant, quoteAndJoin(scopeNames, enumSeparatorConstant), received)
}

func expectedTypeMessage(expectedType string, received any) string {
	return fmt.Sprintf(expectedTypeTemplateConstant, expectedType, describeType(received))
}

func describeType(value any) string {
	switch value.(type) {
	case nil:
		return typeNameNullConstant
	case string:
		return typeNameStringConstant
	case int64, float64, int, uint64:
		return typeNameNumberConstant
	case bool:
		return typeNameBooleanConstant
	case []any:
		return typeNameArrayConstant
	case map[string]any:
		return typeNameObjectConstant
	case time.Time, toml.LocalDate, toml.LocalDateTime, toml.LocalTime:
		return typeNameDateConstant
	default:
		return fmt.Sprintf(typeNameUnknownTemplateConstant, value)
	}
}

func quoteAndJoin(values []string, separator string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, fmt.Sprintf(quotedValueTemplateConstant, value))
	}
	return strings.Join(quoted, separator)
}

func joinPath(segments ...string) string {
	return strings.Join(segments, pathSeparatorConstant)
}
