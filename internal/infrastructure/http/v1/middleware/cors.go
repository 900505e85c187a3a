package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS middleware allows cross-origin requests from the given origins.
// An empty list or a "*" entry allows all origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", HeaderRequestID},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		for _, origin := range allowedOrigins {
			if origin == "*" {
				cfg.AllowAllOrigins = true
				break
			}
		}
		if !cfg.AllowAllOrigins {
			cfg.AllowOrigins = allowedOrigins
		}
	}

	return cors.New(cfg)
}
