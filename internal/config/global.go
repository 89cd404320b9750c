package config

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"access-service/internal/utils/runtime"
)

const (
	kafkaHostFlag  = "kafka-host"
	kafkaPortFlag  = "kafka-port"
	mongoDBURIFlag = "mongodb-uri"

	developmentFlag = "development"

	auditIntervalFlag    = "audit-interval"
	auditRemoveExtraFlag = "audit-remove-extra"
	auditWorkersFlag     = "audit-workers"
)

type Config struct {
	Kafka   KafkaConfig
	MongoDB MongoDBConfig
	Audit   AuditConfig

	Development bool
}

type KafkaConfig struct {
	Host string
	Port int
}

type MongoDBConfig struct {
	URI string
}

// AuditConfig drives the periodic permission reconciliation loop.
// An Interval of zero disables the loop.
type AuditConfig struct {
	Interval    time.Duration
	RemoveExtra bool
	Workers     int
}

func LoadGlobalConfig() Config {
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(auditIntervalFlag, time.Duration(0))
	viper.SetDefault(auditRemoveExtraFlag, false)
	viper.SetDefault(auditWorkersFlag, 8)

	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Duration(auditIntervalFlag, viper.GetDuration(auditIntervalFlag), "Interval between permission audits (0 disables)")
	pflag.Bool(auditRemoveExtraFlag, viper.GetBool(auditRemoveExtraFlag), "Revoke permissions beyond the role baseline during audits")
	pflag.Int32(auditWorkersFlag, viper.GetInt32(auditWorkersFlag), "Concurrent users reconciled per audit")
	pflag.Parse()

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	runtime.Must(viper.BindEnv(kafkaHostFlag))
	runtime.Must(viper.BindEnv(kafkaPortFlag))
	runtime.Must(viper.BindEnv(mongoDBURIFlag))
	runtime.Must(viper.BindEnv(developmentFlag))
	runtime.Must(viper.BindEnv(auditIntervalFlag))
	runtime.Must(viper.BindEnv(auditRemoveExtraFlag))
	runtime.Must(viper.BindEnv(auditWorkersFlag))

	return Config{
		Kafka: KafkaConfig{
			Host: viper.GetString(kafkaHostFlag),
			Port: int(viper.GetInt32(kafkaPortFlag)),
		},
		MongoDB: MongoDBConfig{
			URI: viper.GetString(mongoDBURIFlag),
		},
		Audit: AuditConfig{
			Interval:    viper.GetDuration(auditIntervalFlag),
			RemoveExtra: viper.GetBool(auditRemoveExtraFlag),
			Workers:     int(viper.GetInt32(auditWorkersFlag)),
		},
		Development: viper.GetBool(developmentFlag),
	}
}
