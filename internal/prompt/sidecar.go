package prompt

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"

	"github.com/davidbz/promptgate/internal/domain"
)

// Sidecar keys, newest layout first.
var sidecarSettingsPrefixes = []string{ //nolint:gochecknoglobals // read-only lookup order
	"execution_settings.default",
	"completion",
}

// parseSidecar reads a config.json style record holding a description and
// default execution settings.
func parseSidecar(data []byte) ([]domain.TemplateOption, error) {
	v := viper.New()
	v.SetConfigType("json")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse prompt config: %w", err)
	}

	var opts []domain.TemplateOption

	if description := v.GetString("description"); description != "" {
		opts = append(opts, domain.WithDescription(description))
	}

	for _, prefix := range sidecarSettingsPrefixes {
		if !v.IsSet(prefix) {
			continue
		}

		opts = append(opts, domain.WithDefaults(domain.SamplingConfig{
			MaxTokens:        v.GetInt(prefix + ".max_tokens"),
			Temperature:      v.GetFloat64(prefix + ".temperature"),
			TopP:             v.GetFloat64(prefix + ".top_p"),
			PresencePenalty:  v.GetFloat64(prefix + ".presence_penalty"),
			FrequencyPenalty: v.GetFloat64(prefix + ".frequency_penalty"),
		}))
		break
	}

	return opts, nil
}
