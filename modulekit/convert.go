package modulekit

import (
	"fmt"
	"strconv"
)

// ConverterFunc parses a raw string argument into its declared type.
type ConverterFunc func(value string) (any, error)

func defaultConverters() map[string]ConverterFunc {
	return map[string]ConverterFunc{
		"int": func(value string) (any, error) {
			return strconv.Atoi(value)
		},
		"float": func(value string) (any, error) {
			return strconv.ParseFloat(value, 64)
		},
		"bool": func(value string) (any, error) {
			return strconv.ParseBool(value)
		},
	}
}

// convertArguments applies the registered converter for each declared
// argument type; types without a converter keep the raw string. Arguments
// the hub did not supply are simply absent from the result.
func (m *Module) convertArguments(args []Arg, supplied map[string]string) (map[string]any, error) {
	converted := make(map[string]any)
	for _, arg := range args {
		value, ok := supplied[arg.Name]
		if !ok || value == "" {
			continue
		}

		converter, ok := m.converters[arg.Type]
		if !ok {
			converted[arg.Name] = value
			continue
		}

		parsed, err := converter(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q for argument %q: %w", value, arg.Name, err)
		}

		converted[arg.Name] = parsed
	}

	return converted, nil
}
