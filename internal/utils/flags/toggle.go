package flags

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTypeNameConstant          = "bool"
	toggleTrueTextConstant          = "true"
	toggleFalseTextConstant         = "false"
	toggleInvalidValueTemplate      = "invalid toggle value %q (use yes/no, on/off or true/false)"
	toggleEnabledPlaceholder        = "<YES|no>"
	toggleDisabledPlaceholder       = "<yes|NO>"
	toggleUsageTemplateConstant     = "`%s` %s"
	longFlagPrefixConstant          = "--"
	shortFlagPrefixConstant         = "-"
	flagValueSeparatorConstant      = "="
	argumentTerminatorConstant      = "--"
	toggleUsageOnlyTemplateConstant = "`%s`"
)

var toggleWords = map[string]bool{
	"yes": true,
	"y":   true,
	"on":  true,
	"no":  false,
	"n":   false,
	"off": false,
}

// toggleRegistry remembers which flag names and shorthands accept a detached value.
type toggleRegistry struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggles = &toggleRegistry{names: map[string]struct{}{}, shorthands: map[string]struct{}{}}

func (registry *toggleRegistry) add(name string, shorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

// acceptsDetachedValue reports whether argument is a registered toggle written without "=value".
func (registry *toggleRegistry) acceptsDetachedValue(argument string) bool {
	if strings.Contains(argument, flagValueSeparatorConstant) {
		return false
	}

	registry.mutex.RLock()
	defer registry.mutex.RUnlock()

	if name, isLong := strings.CutPrefix(argument, longFlagPrefixConstant); isLong {
		_, registered := registry.names[name]
		return len(name) > 0 && registered
	}
	if shorthand, isShort := strings.CutPrefix(argument, shortFlagPrefixConstant); isShort && len(shorthand) == 1 {
		_, registered := registry.shorthands[shorthand]
		return registered
	}
	return false
}

// AddToggleFlag registers a boolean flag that also accepts yes/no and on/off, either attached or as the next argument.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &toggleValue{enabled: defaultValue, target: target}
	value.store(defaultValue)
	flagSet.VarP(value, name, shorthand, usage)

	flag := flagSet.Lookup(name)
	flag.NoOptDefVal = toggleTrueTextConstant
	flag.Usage = toggleUsage(usage, defaultValue)

	registeredToggles.add(name, shorthand)
}

// ParseToggle interprets a toggle value; an empty value enables the toggle.
func ParseToggle(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	if enabled, known := toggleWords[normalizedValue]; known {
		return enabled, nil
	}
	if enabled, parseError := strconv.ParseBool(normalizedValue); parseError == nil {
		return enabled, nil
	}
	return false, fmt.Errorf(toggleInvalidValueTemplate, rawValue)
}

// NormalizeToggleArguments joins "--watch no" into "--watch=no" for registered toggles so pflag does not treat the value as a positional argument.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == argumentTerminatorConstant {
			return append(normalized, arguments[index:]...)
		}

		hasNext := index+1 < len(arguments)
		if hasNext && registeredToggles.acceptsDetachedValue(argument) && !strings.HasPrefix(arguments[index+1], shortFlagPrefixConstant) {
			normalized = append(normalized, argument+flagValueSeparatorConstant+arguments[index+1])
			index++
			continue
		}
		normalized = append(normalized, argument)
	}
	return normalized
}

func toggleUsage(description string, defaultValue bool) string {
	placeholder := toggleDisabledPlaceholder
	if defaultValue {
		placeholder = toggleEnabledPlaceholder
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleUsageOnlyTemplateConstant, placeholder)
	}
	return fmt.Sprintf(toggleUsageTemplateConstant, placeholder, trimmedDescription)
}

type toggleValue struct {
	enabled bool
	target  *bool
}

func (value *toggleValue) store(enabled bool) {
	value.enabled = enabled
	if value.target != nil {
		*value.target = enabled
	}
}

func (value *toggleValue) Set(rawValue string) error {
	enabled, parseError := ParseToggle(rawValue)
	if parseError != nil {
		return parseError
	}
	value.store(enabled)
	return nil
}

func (value *toggleValue) String() string {
	if value != nil && value.enabled {
		return toggleTrueTextConstant
	}
	return toggleFalseTextConstant
}

func (value *toggleValue) Type() string {
	return toggleTypeNameConstant
}
