package inference

// Config contains settings for an Azure AI model inference endpoint.
type Config struct {
	Endpoint   string `env:"INFERENCE_ENDPOINT"`
	APIKey     string `env:"INFERENCE_API_KEY"`
	APIVersion string `env:"INFERENCE_API_VERSION" envDefault:"2024-05-01-preview"`
	Timeout    int    `env:"INFERENCE_TIMEOUT"     envDefault:"0"`
}
