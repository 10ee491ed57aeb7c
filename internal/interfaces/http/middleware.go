package http

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestLogger deja un logger por petición en el UserContext (zerolog.Ctx) y registra
// método, ruta, status, latencia y usuario al terminar.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqLog := log.With().Str("method", c.Method()).Str("path", c.Path()).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()

		status := statusOf(c, err)
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}

// RequestObserver lo implementa el registro de métricas de infraestructura.
type RequestObserver interface {
	RequestStarted() (done func())
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Metrics mide cada petición por patrón de ruta (no por path concreto).
func Metrics(obs RequestObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := obs.RequestStarted()
		start := time.Now()
		err := c.Next()
		done()
		obs.ObserveRequest(c.Method(), c.Route().Path, statusOf(c, err), time.Since(start))
		return err
	}
}

func statusOf(c *fiber.Ctx, err error) int {
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
	return c.Response().StatusCode()
}

// RateLimitConfig tasa sostenida y ráfaga por usuario.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// RateLimit limita las peticiones de escritura por usuario autenticado (o IP si no hay sesión).
// GET y HEAD no consumen cupo. RPS <= 0 desactiva el límite.
func RateLimit(cfg RateLimitConfig) fiber.Handler {
	if cfg.RPS <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)
			limiters[key] = l
		}
		return l
	}
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
			return c.Next()
		}
		key := GetUserID(c)
		if key == "" {
			key = "ip:" + c.IP()
		}
		if !limiterFor(key).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:  "RATE_LIMITED",
				Error: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}
}
