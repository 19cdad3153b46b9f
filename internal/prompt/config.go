package prompt

// Config selects and configures the template source. Redis is used when
// RedisAddr is set, the prompt directory otherwise.
type Config struct {
	Dir           string `env:"PROMPT_DIR"            envDefault:"prompts/Translate"`
	RedisAddr     string `env:"PROMPT_REDIS_ADDR"`
	RedisPassword string `env:"PROMPT_REDIS_PASSWORD"`
	RedisDB       int    `env:"PROMPT_REDIS_DB"       envDefault:"0"`
	RedisKey      string `env:"PROMPT_REDIS_KEY"      envDefault:"prompts:Translate"`
}
