package config

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"
)

// Configuration file paths
const (
	ConfigPathGacha   = "configs/gacha.yaml"
	ConfigPathCatalog = "configs/spirits.yaml"
)
