// Package handler is the serverless entry point for the resort back office.
// The platform calls Handler for every request; the service graph is built on
// the first call and reused while the instance stays warm.
package handler

import (
	"net/http"
	"resort/config"
	"resort/di"
	"resort/shared/logger"
	transport "resort/transport/http"
	"sync"
)

var (
	boot sync.Once
	app  *transport.HTTP
)

func Handler(w http.ResponseWriter, r *http.Request) {
	boot.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		app = di.InitializeService()
	})

	// the platform hands over a rewritten URL with an empty RequestURI
	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
