package bootstrap

import (
	"doc_processing_backend/config"
	"doc_processing_backend/platform/database"
	"doc_processing_backend/platform/extraction"
	"doc_processing_backend/platform/queue"
	"doc_processing_backend/platform/redis"
	"doc_processing_backend/platform/storage"
)

type Infrastructure struct {
	DB         *database.DB
	Redis      *redis.Service
	Storage    *storage.Service
	Arrivals   *queue.ArrivalQueue
	Extraction *extraction.Client
}

func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return nil, err
	}
	infra.DB = db
	if err := infra.DB.AutoMigrate(); err != nil {
		return nil, err
	}

	redisService, err := redis.InitRedis(cfg)
	if err != nil {
		return nil, err
	}
	infra.Redis = redisService

	storageService, err := storage.InitStorageService(cfg)
	if err != nil {
		return nil, err
	}
	infra.Storage = storageService

	infra.Arrivals = queue.NewArrivalQueue(redisService, cfg.ArrivalQueue)
	infra.Extraction = extraction.NewClient(cfg.ExtractionEndpoint, cfg.ExtractionAPIKey, cfg.ExtractionPollWait)

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if err := infra.Redis.Close(); err != nil {
		return err
	}
	return infra.DB.Close()
}
