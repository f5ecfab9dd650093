package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/config"
)

// CORS builds the cross-origin policy. A "*" entry allows any origin.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{HeaderRequestID, "Content-Disposition", "Retry-After"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}

	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			// credentials cannot be combined with a wildcard origin
			cc.AllowCredentials = false
			break
		}
	}
	if !cc.AllowAllOrigins {
		cc.AllowOrigins = cfg.AllowedOrigins
	}

	return cors.New(cc)
}
