package records

import (
	"reflect"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/vfg2006/crm-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const listSeparator = ";"

var timeType = reflect.TypeOf(time.Time{})

// DecodeRow converte uma linha importada (coluna -> texto) na struct de destino.
// Valores vazios são ignorados para que os padrões do domínio sejam aplicados na validação.
func DecodeRow(row map[string]string, dest any) error {
	input := make(map[string]any, len(row))
	for column, value := range row {
		if value = strings.TrimSpace(value); value != "" {
			input[column] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           dest,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToTimeHook,
			stringToListHook,
			stringToNumberHook,
			stringToBoolHook,
		),
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func stringToTimeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != timeType {
		return data, nil
	}
	return utils.ParseFlexibleDate(data.(string))
}

// stringToListHook separa listas por ";" (tags e afins)
func stringToListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}

	var items []string
	for _, item := range strings.Split(data.(string), listSeparator) {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

// stringToNumberHook remove separadores de milhar e símbolos comuns de moeda
func stringToNumberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		cleaned := strings.NewReplacer(",", "", " ", "", "₹", "", "$", "").Replace(data.(string))
		return cleaned, nil
	}
	return data, nil
}

func stringToBoolHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}

	switch strings.ToLower(strings.TrimSpace(data.(string))) {
	case "yes", "y", "sim", "x":
		return true, nil
	case "no", "n", "nao", "não":
		return false, nil
	}
	return data, nil
}

func toMap(value any) (map[string]any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
