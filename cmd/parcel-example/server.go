package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/zoobzio/parcel"
	"github.com/zoobzio/parcel/parcelgin"
)

// User is the resource served by the example.
type User struct {
	Name string `msgpack:"name"`
	Data []byte `msgpack:"data"`
}

func defaultUser() User {
	return User{Name: "user name", Data: make([]byte, 15)}
}

func newRouter(cfg parcel.Config, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), accessLog(logger))

	users := parcel.NewProcessor[User](parcel.Named, parcel.WithConfig(cfg))

	r.GET("/", func(c *gin.Context) {
		parcelgin.Render(c, http.StatusOK, parcel.Of(defaultUser()))
	})

	r.POST("/", func(c *gin.Context) {
		user, ok := parcelgin.BindWith(c, users)
		if !ok {
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf("<h1>%q</h1>", user.Name)))
	})

	r.POST("/raw", func(c *gin.Context) {
		user, ok := parcelgin.BindWith(c, users)
		if !ok {
			return
		}
		parcelgin.Render(c, http.StatusOK, parcel.RawOf(user))
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.Last().Error()))
			logger.Warn("request rejected", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
