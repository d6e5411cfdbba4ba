package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/ajoca/Barberia/internal/config"
	dbpkg "github.com/ajoca/Barberia/internal/db"
	"github.com/ajoca/Barberia/internal/middleware"
	"github.com/ajoca/Barberia/internal/routes"
)

func main() {

	// .env é opcional; em produção as variáveis vêm do ambiente
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := newRedis(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, rdb)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newRedis conecta no Redis do bridge de WhatsApp. Sem Redis a API sobe
// normalmente, só deixa de enfileirar mensagens.
func newRedis(cfg *config.Config) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL (%v), whatsapp queue disabled", err)
		return nil
	}
	return redis.NewClient(opts)
}
