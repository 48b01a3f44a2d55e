package main

import (
	"os"

	"aida-server/config"
	"aida-server/logger"
	"aida-server/pipeline"
	"aida-server/routers"
	"aida-server/routers/api"
	"aida-server/service"
	"aida-server/store"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	db, err := store.Open(cfg.MySQL.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	projects := store.NewMySQLProjectStore(db)
	tasks := store.NewMySQLTaskStore(db)

	var assets *service.AssetStore
	if cfg.MinIO.Endpoint != "" {
		assets, err = service.NewAssetStore(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("connect asset store")
		}
	}

	var gen pipeline.Generator
	if cfg.Worker.Addr != "" {
		gen = service.NewWorkerClient(cfg, assets, log)
	} else {
		log.Warn().Msg("no worker configured, running in deterministic fallback mode")
	}
	orch := pipeline.New(projects, gen, log)

	var queue *service.Queue
	if cfg.Redis.Addr != "" {
		redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password}
		queue = service.NewQueue(redisOpt)
		defer queue.Close()

		worker := service.NewStageWorker(tasks, orch, log)
		worker.Start(redisOpt, 5)
		defer worker.Shutdown()
	} else {
		log.Warn().Msg("no redis configured, stages run synchronously")
	}

	handler := api.NewHandler(projects, tasks, orch, queue, log)
	r := routers.InitRouter(handler)

	log.Info().Str("port", cfg.Server.Port).Msg("server listening")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
