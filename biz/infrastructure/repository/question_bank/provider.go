package question_bank

import (
	"edu-platform/biz/infrastructure/config"
	"edu-platform/biz/infrastructure/util/log"
)

// NewMapperFromConfig falls back to an empty bank when no DSN is set.
func NewMapperFromConfig(config *config.Config) (IMySQLMapper, error) {
	if config.MySQL.DSN == "" {
		log.Info("MySQL DSN not set, quiz generation uses built-in questions only")
		return NoopMapper{}, nil
	}
	return NewMySQLMapper(config.MySQL.DSN)
}
