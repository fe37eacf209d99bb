// Package config carrega a configuração do processo a partir do
// ambiente. Um arquivo .env na raiz é lido primeiro, se existir, no
// mesmo espírito do dotenv; variáveis já exportadas têm precedência.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config é tudo que o servidor aceita de fora.
type Config struct {
	// Endereço HTTP/WebSocket do servidor.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// URL do NATS para o feed de eventos. Vazio desliga o feed.
	NATSURL string `env:"NATS_URL"`

	// Política de pontuação do ranking.
	WinPoints  int `env:"WIN_POINTS" envDefault:"200"`
	DrawPoints int `env:"DRAW_POINTS" envDefault:"50"`

	// Nível de log do logrus (debug, info, warn...).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load lê o .env (se houver) e monta a configuração.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		// Sem .env é o caso normal em produção.
		log.Debug("no .env file loaded")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
